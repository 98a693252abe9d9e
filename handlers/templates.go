package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

const scheduleTemplateName = "schedule.html"

const scheduleTemplate = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Sochi station schedule {{.Schedule.Date}}</title>
</head>
<body>
<h1>Sochi railway station, {{.Schedule.Date}}</h1>
{{if .Schedule.Error}}<p class="warning">{{.Schedule.Error}}</p>{{end}}
{{template "direction" dict "Title" "Arrivals" "Entries" .Schedule.Arrivals "Total" .Schedule.TotalArrivals}}
{{template "direction" dict "Title" "Departures" "Entries" .Schedule.Departures "Total" .Schedule.TotalDepartures}}
{{if .Truncated}}<p><a href="?limit=all">Show all trains</a></p>{{end}}
</body>
</html>
{{define "direction"}}
<h2>{{.Title}} ({{.Total}})</h2>
{{if .Entries}}
<table>
	<tr><th>Time</th><th>Train</th><th>Route</th></tr>
	{{range .Entries}}<tr><td>{{.Time}}</td><td>{{.Train}}</td><td>{{.Route}}</td></tr>
	{{end}}
</table>
{{else}}
<p>No data</p>
{{end}}
{{end}}`

// LoadTemplates installs the HTML templates on router
func LoadTemplates(router *gin.Engine) {
	tmpl := template.Must(template.New(scheduleTemplateName).Funcs(template.FuncMap{
		"dict": dict,
	}).Parse(scheduleTemplate))
	router.SetHTMLTemplate(tmpl)
}

func dict(pairs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if key, ok := pairs[i].(string); ok {
			m[key] = pairs[i+1]
		}
	}
	return m
}
