package api

import (
	"html/template"

	"diabetes-outcome-eval/internal/predict"
)

// formPage is the template context for the input form.
type formPage struct {
	Fields        []predict.Field
	Values        map[string]string
	HasPrediction bool
	Prediction    float64
	ErrorMessage  string
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Diabetes Outcome Predictor</title>
  <style>
    body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
    label { display: block; margin-top: 0.75rem; }
    input { width: 12rem; }
    .result { margin-top: 1.5rem; padding: 1rem; background: #eef7ee; }
    .error { margin-top: 1.5rem; padding: 1rem; background: #f7eeee; }
  </style>
</head>
<body>
  <h1>Diabetes Outcome Predictor</h1>
  <form method="post" action="/">
    {{- range .Fields }}
    <label for="{{ .Name }}">{{ .Label }}
      <input type="text" id="{{ .Name }}" name="{{ .Name }}" value="{{ index $.Values .Name }}">
    </label>
    {{- end }}
    <p><button type="submit">Predict</button></p>
  </form>
  {{- if .HasPrediction }}
  <div class="result">Estimated outcome: <strong>{{ printf "%.4f" .Prediction }}</strong></div>
  {{- end }}
  {{- if .ErrorMessage }}
  <div class="error">{{ .ErrorMessage }}</div>
  {{- end }}
</body>
</html>
`

func indexTemplate() *template.Template {
	return template.Must(template.New("index").Parse(indexHTML))
}
