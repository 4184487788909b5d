package render

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"navalwatch/internal/digest"
)

type pageRow struct {
	Date    string
	Source  string
	Title   string
	Link    string
	Summary string
	Score   string
	Undated bool
}

type pageData struct {
	GeneratedAt string
	WindowDays  int
	CSVFile     string
	Total       int
	SourceCount int
	AvgScore    string
	Rows        []pageRow
}

var pageTemplate = template.Must(template.New("digest").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Naval AI Watch</title>
  <link href="https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css" rel="stylesheet">
</head>
<body class="bg-gray-50">
<header class="bg-blue-900 text-white">
  <div class="max-w-7xl mx-auto px-4 py-6 flex items-center justify-between">
    <div class="flex items-center gap-3">
      <span class="text-2xl">⚓</span>
      <div>
        <h1 class="text-2xl font-bold">Naval AI Watch</h1>
        <div class="text-blue-200 text-sm">{{.WindowDays}}-day window • Generated {{.GeneratedAt}}</div>
      </div>
    </div>
    <a href="{{.CSVFile}}" class="bg-blue-600 hover:bg-blue-500 px-4 py-2 rounded">CSV export</a>
  </div>
</header>
<main class="max-w-7xl mx-auto px-4 py-6">
  <div class="grid grid-cols-1 md:grid-cols-3 gap-4 mb-6">
    <div class="bg-white rounded shadow p-4 text-center">
      <div class="text-3xl font-bold text-blue-700">{{.Total}}</div>
      <div class="text-gray-600">Entries</div>
    </div>
    <div class="bg-white rounded shadow p-4 text-center">
      <div class="text-3xl font-bold text-green-600">{{.SourceCount}}</div>
      <div class="text-gray-600">Active sources</div>
    </div>
    <div class="bg-white rounded shadow p-4 text-center">
      <div class="text-3xl font-bold text-purple-600">{{.AvgScore}}</div>
      <div class="text-gray-600">Average score</div>
    </div>
  </div>
  <div class="bg-white rounded shadow p-4 mb-4">
    <input id="q" type="search" placeholder="Filter (title, summary, source)…" class="border rounded px-3 py-2 w-full">
  </div>
  <div class="bg-white rounded shadow overflow-x-auto">
    <table class="min-w-full">
      <thead class="bg-blue-50">
        <tr>
          <th class="text-left p-3">Date</th>
          <th class="text-left p-3">Source</th>
          <th class="text-left p-3">Entry</th>
          <th class="text-left p-3">Summary</th>
          <th class="text-left p-3">Score</th>
        </tr>
      </thead>
      <tbody id="tbody">
{{- range .Rows}}
        <tr class="hover:bg-gray-50 border-t">
          <td class="p-3 text-sm text-gray-600 whitespace-nowrap">{{.Date}}{{if .Undated}}<span class="text-xs text-gray-400"> (undated)</span>{{end}}</td>
          <td class="p-3 text-xs"><span class="bg-blue-100 text-blue-800 px-2 py-1 rounded">{{.Source}}</span></td>
          <td class="p-3"><a class="text-blue-700 hover:underline font-semibold" target="_blank" rel="noopener" href="{{.Link}}">{{.Title}}</a></td>
          <td class="p-3 text-sm text-gray-800">{{.Summary}}</td>
          <td class="p-3 text-center"><span class="bg-indigo-100 text-indigo-800 px-2 py-1 rounded text-sm font-bold">{{.Score}}</span></td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>
</main>
<script>
(function() {
  var rows = Array.prototype.slice.call(document.querySelectorAll("#tbody tr"));
  var q = document.getElementById("q");
  q.addEventListener("input", function() {
    var v = (q.value || "").toLowerCase();
    rows.forEach(function(tr) {
      tr.style.display = !v || tr.innerText.toLowerCase().indexOf(v) >= 0 ? "" : "none";
    });
  });
})();
</script>
</body>
</html>
`))

// WriteHTML renders the digest page for an already ranked entry set.
// csvFile is the relative link target of the export button.
func WriteHTML(w io.Writer, entries []digest.Entry, generatedAt time.Time, windowDays int, csvFile string) error {
	rows := make([]pageRow, 0, len(entries))
	sources := make(map[string]struct{})
	var total float64

	for _, e := range entries {
		sources[e.Source] = struct{}{}
		total += e.Score
		rows = append(rows, pageRow{
			Date:    e.Published.UTC().Format("2006-01-02"),
			Source:  e.Source,
			Title:   e.Title,
			Link:    e.Link,
			Summary: e.Summary,
			Score:   fmt.Sprintf("%.2f", e.Score),
			Undated: e.Undated,
		})
	}

	avg := "0.00"
	if len(entries) > 0 {
		avg = fmt.Sprintf("%.2f", total/float64(len(entries)))
	}

	return pageTemplate.Execute(w, pageData{
		GeneratedAt: generatedAt.UTC().Format("2006-01-02 15:04 UTC"),
		WindowDays:  windowDays,
		CSVFile:     csvFile,
		Total:       len(entries),
		SourceCount: len(sources),
		AvgScore:    avg,
		Rows:        rows,
	})
}
