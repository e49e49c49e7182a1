package export

const reportTemplate = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.TitleTranslated}}</title>
<style>
  body { font-family: "Noto Sans JP", "Hiragino Sans", sans-serif; color: #111827; max-width: 900px; margin: 0 auto; padding: 24px; }
  .report-header { background-color: #f0fdfa; padding: 20px; border-radius: 10px; border-bottom: 2px solid #e5e7eb; margin-bottom: 20px; }
  .report-title { font-family: "Noto Serif JP", serif; font-weight: bold; font-size: 1.8em; }
  .report-subtitle { color: #374151; font-size: 1.1em; margin-top: 6px; }
  .report-meta { color: #6b7280; font-size: 0.9em; margin-top: 10px; }
  .section-header { color: #0f766e; border-bottom: 2px solid #ccfbf1; padding-bottom: 5px; margin-top: 30px; margin-bottom: 15px; font-weight: bold; font-size: 1.2em; }
  .summary-box { background-color: #f9fafb; padding: 15px; border-left: 5px solid #2dd4bf; margin-bottom: 20px; white-space: pre-wrap; }
  .figure-box { border: 1px solid #e5e7eb; border-radius: 8px; padding: 15px; margin-bottom: 20px; background-color: white; }
  .figure-label { font-weight: bold; color: #0f766e; margin-bottom: 8px; }
  .figure-box img { max-width: 100%; border: 1px solid #f3f4f6; }
  .figure-missing { color: #9ca3af; font-style: italic; padding: 20px; text-align: center; background-color: #f9fafb; }
  .figure-text { white-space: pre-wrap; margin-top: 10px; }
  .novelty-box { background-color: #eff6ff; padding: 15px; border-left: 5px solid #3b82f6; white-space: pre-wrap; }
  .sub-label { font-weight: bold; color: #b45309; }
</style>
</head>
<body>
<div class="report-header">
  <div class="report-title">{{.TitleTranslated}}</div>
  <div class="report-subtitle">{{.TitleOriginal}}</div>
  <div class="report-meta">{{.SourceInfo}}{{if .PublicationYear}} ({{.PublicationYear}}){{end}}</div>
</div>

<div class="section-header">1. 背景・目的</div>
<div class="summary-box">{{.Background}}</div>

<div class="section-header">2. 結果・考察</div>
<div class="summary-box">{{.ResultsSummary}}</div>

{{range .Figures}}
<div class="figure-box">
  <div class="figure-label">{{.Label}}</div>
  {{if .CroppedImage}}<img src="{{dataURI .CroppedImage}}" alt="{{.Label}}">{{else}}<div class="figure-missing">画像なし</div>{{end}}
  <div class="figure-text">{{markup .Explanation}}</div>
</div>
{{end}}

<div class="section-header">3. 新規性・重要性</div>
<div class="novelty-box">{{.Novelty}}</div>

<div class="section-header">4. 結論・今後の課題</div>
<div class="summary-box">{{.Conclusions}}</div>
</body>
</html>
`
