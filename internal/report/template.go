package report

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} — {{.DateRange}}</title>
<style>
  :root {
    --bg: #0f1724; --card-bg: #1a2332; --card-hover: #1f2b3d;
    --accent: #4fa3d1; --accent-light: #7ec4e8;
    --text: #e2e8f0; --text-muted: #8899aa;
    --danger-high: #e53e3e; --danger-considerable: #ed8936; --danger-moderate: #ecc94b;
    --snow: #b8d4e8; --border: #2d3a4d; --green: #48bb78;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: var(--bg); color: var(--text); line-height: 1.6; min-height: 100vh;
  }
  .container { max-width: 900px; margin: 0 auto; padding: 1.5rem 1rem; }
  header { text-align: center; margin-bottom: 1.5rem; padding-bottom: 1.5rem; border-bottom: 1px solid var(--border); }
  header h1 { font-size: 1.75rem; font-weight: 700; color: #fff; margin-bottom: 0.25rem; }
  .dates { font-size: 1.1rem; color: var(--accent-light); font-weight: 500; }
  .avy-banner {
    display: inline-flex; align-items: center; gap: 0.5rem;
    margin-top: 1rem; padding: 0.6rem 1.2rem; border: 1px solid var(--border);
    border-radius: 8px; font-size: 0.9rem; font-weight: 600;
  }
  .avy-banner a { text-decoration: underline; text-underline-offset: 2px; color: inherit; }
  .trip-overview {
    background: var(--card-bg); border: 1px solid var(--border); border-radius: 10px;
    padding: 1rem 1.25rem; margin-bottom: 1.5rem; font-size: 0.88rem;
    color: var(--text-muted); line-height: 1.7;
  }
  details.day-card {
    background: var(--card-bg); border: 1px solid var(--border); border-radius: 10px;
    margin-bottom: 0.75rem; overflow: hidden;
  }
  details.day-card[open], details.day-card:hover { border-color: var(--accent); }
  .day-summary {
    display: grid; grid-template-columns: 7.5rem 3rem 1fr auto;
    align-items: center; gap: 0.75rem; padding: 0.9rem 1.25rem; cursor: pointer; list-style: none;
  }
  .day-date { font-weight: 600; font-size: 0.95rem; color: #fff; line-height: 1.3; }
  .day-date small { display: block; font-weight: 400; font-size: 0.78rem; color: var(--text-muted); }
  .weather-icon { font-size: 1.5rem; text-align: center; line-height: 1; }
  .day-info { display: flex; flex-wrap: wrap; gap: 0.5rem 1.5rem; font-size: 0.85rem; }
  .info-label { color: var(--text-muted); font-size: 0.78rem; margin-right: 0.3rem; }
  .info-value { font-weight: 500; }
  .snow-value { color: var(--snow); }
  .temp-value { color: var(--accent-light); }
  .day-oneliner { font-size: 0.82rem; color: var(--text-muted); text-align: right; }
  .day-detail { padding: 0 1.25rem 1.25rem; border-top: 1px solid var(--border); }
  .detail-section { margin-top: 1rem; }
  .detail-section h3 {
    font-size: 0.82rem; font-weight: 600; text-transform: uppercase; letter-spacing: 0.05em;
    color: var(--accent); margin-bottom: 0.5rem; padding-bottom: 0.3rem; border-bottom: 1px solid var(--border);
  }
  .detail-grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 0.5rem; }
  .detail-cell { background: rgba(0,0,0,0.2); border-radius: 6px; padding: 0.6rem 0.75rem; font-size: 0.82rem; }
  .cell-label { font-size: 0.72rem; color: var(--text-muted); text-transform: uppercase; letter-spacing: 0.04em; margin-bottom: 0.25rem; }
  .cell-value { font-weight: 500; color: var(--text); line-height: 1.4; }
  .detail-text { font-size: 0.85rem; color: var(--text); line-height: 1.6; }
  .freezing-line { margin-top: 0.4rem; font-size: 0.82rem; color: var(--text-muted); }
  .backcountry-note { background: rgba(72,187,120,0.08); border-left: 3px solid var(--green); border-radius: 0 6px 6px 0; padding: 0.6rem 0.9rem; font-size: 0.84rem; line-height: 1.6; }
  .avy-note { background: rgba(237,137,54,0.08); border-left: 3px solid var(--danger-considerable); border-radius: 0 6px 6px 0; padding: 0.6rem 0.9rem; font-size: 0.84rem; line-height: 1.6; }
  .snowpack-section { background: var(--card-bg); border: 1px solid var(--border); border-radius: 10px; padding: 1.25rem; margin-top: 1.5rem; }
  .snowpack-section h2 { font-size: 1rem; font-weight: 600; margin-bottom: 0.75rem; color: #fff; }
  .snowpack-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 0.75rem; margin-bottom: 1rem; }
  .snowpack-item { background: rgba(0,0,0,0.2); border-radius: 6px; padding: 0.75rem; }
  .sp-label { font-size: 0.75rem; color: var(--text-muted); text-transform: uppercase; letter-spacing: 0.04em; }
  .sp-value { font-size: 0.85rem; font-weight: 600; margin-top: 0.2rem; }
  .snowpack-text { font-size: 0.85rem; color: var(--text-muted); line-height: 1.7; }
  .snowpack-text li { margin-bottom: 0.3rem; margin-left: 1.2rem; }
  .snowpack-sub { margin-top: 0.75rem; }
  .snowpack-sub h3 {
    font-size: 0.82rem; font-weight: 600; text-transform: uppercase;
    letter-spacing: 0.05em; color: var(--accent); margin-bottom: 0.4rem;
  }
  footer { margin-top: 1.5rem; padding-top: 1.25rem; border-top: 1px solid var(--border); }
  footer h2 { font-size: 1rem; font-weight: 600; margin-bottom: 0.75rem; color: #fff; }
  .link-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 0.5rem; margin-bottom: 1rem; }
  .link-item {
    display: block; padding: 0.6rem 0.9rem; background: var(--card-bg); border: 1px solid var(--border);
    border-radius: 8px; color: var(--accent-light); text-decoration: none; font-size: 0.85rem;
  }
  .link-item:hover { border-color: var(--accent); background: var(--card-hover); }
  .link-item small { display: block; color: var(--text-muted); font-size: 0.75rem; margin-top: 0.15rem; }
  .last-updated { text-align: center; font-size: 0.78rem; color: var(--text-muted); margin-top: 1rem; }
  .auto-note { text-align: center; font-size: 0.75rem; color: var(--text-muted); margin-top: 0.5rem; font-style: italic; }
  @media (max-width: 640px) {
    .day-summary { grid-template-columns: 1fr; gap: 0.4rem; }
    .detail-grid { grid-template-columns: 1fr; }
    .day-oneliner { text-align: left; }
  }
</style>
</head>
<body>
<div class="container">
  <header>
    <h1>{{.Title}}</h1>
    <div class="dates">{{.DateRange}}</div>
    <div class="avy-banner" style="color: var(--{{.Banner.Color}})">
      Avalanche Danger: {{.Banner.Label}} &nbsp;
      <a href="{{.ForecastURL}}" target="_blank" rel="noopener">Details</a>
    </div>
  </header>

  <div class="trip-overview">{{.Outlook}}</div>

  {{range $i, $c := .Cards}}
  <details class="day-card"{{if eq $i 0}} open{{end}}>
    <summary class="day-summary">
      <div class="day-date">{{$c.Day.DateLabel}}<small>{{$c.Day.Weekday}}</small></div>
      <div class="weather-icon">{{$c.Day.Icon}}</div>
      <div class="day-info">
        <div><span class="info-label">Mtn</span><span class="info-value temp-value">{{$c.Day.Mountain.LowC}} / {{$c.Day.Mountain.HighC}}°C</span></div>
        <div><span class="info-label">Valley</span><span class="info-value">{{$c.ValLow}} / {{$c.ValHigh}}°C</span></div>
        <div><span class="info-label">Snow</span><span class="info-value snow-value">{{$c.SnowLabel}}</span></div>
        <div><span class="info-label">Wind</span><span class="info-value">{{$c.WindLabel}}</span></div>
      </div>
      <div class="day-oneliner">{{$c.Day.Summary}}</div>
    </summary>
    <div class="day-detail">
      <div class="detail-section">
        <h3>Mountain Forecast</h3>
        <div class="detail-grid">
          {{range $c.Periods}}
          <div class="detail-cell">
            <div class="cell-label">{{.Label}}</div>
            {{if .Cell}}
            <div class="cell-value">{{.Cell.Sky}}<br>{{.Cell.Temp}}, Wind {{.Cell.Wind}}<br>Snow: {{.Cell.Snow}}</div>
            {{else}}
            <div class="cell-value">No data</div>
            {{end}}
          </div>
          {{end}}
        </div>
        <div class="freezing-line">Freezing level: {{$c.FreezingLabel}}</div>
      </div>
      <div class="detail-section"><h3>Valley Forecast</h3><div class="detail-text"><p>{{$c.Day.ValleyText}}</p></div></div>
      <div class="detail-section"><h3>Aviation Weather</h3><div class="detail-text"><p>{{$c.MetarLine}}</p></div></div>
      <div class="detail-section"><h3>Backcountry Notes</h3><div class="backcountry-note">{{$c.Day.BackcountryNote}}</div></div>
      <div class="detail-section"><h3>Avalanche Considerations</h3><div class="avy-note">{{$c.Day.AvalancheNote}}</div></div>
    </div>
  </details>
  {{end}}

  {{if and .Bulletin .Bulletin.Report}}
  {{with .Bulletin.Report}}
  <div class="snowpack-section">
    <h2>Avalanche Forecast — {{$.RegionName}}</h2>
    {{if .DangerRatings}}
    <div class="snowpack-grid">
      {{range .DangerRatings}}
      <div class="snowpack-item">
        <div class="sp-label">{{if .DateDisplay}}{{.DateDisplay}}{{else}}{{.Date}}{{end}}</div>
        <div class="sp-value">Alp: {{.Alpine.Display}}<br>TL: {{.Treeline.Display}}<br>BTL: {{.BelowTreeline.Display}}</div>
      </div>
      {{end}}
    </div>
    {{end}}
    {{range .Summaries}}
    <div class="snowpack-sub">
      <h3>{{.Kind}}</h3>
      <div class="snowpack-text">{{.Content}}</div>
    </div>
    {{end}}
    {{if .Problems}}
    <div class="snowpack-sub">
      <h3>Avalanche Problems</h3>
      {{range .Problems}}
      <div class="avy-note" style="margin-bottom:0.5rem">
        <strong>{{.Kind}}</strong> — Likelihood: {{.Likelihood}}, Size: {{.SizeMin}}-{{.SizeMax}}<br>
        Elevations: {{range $i, $e := .Elevations}}{{if $i}}, {{end}}{{$e}}{{end}} |
        Aspects: {{range $i, $a := .Aspects}}{{if $i}}, {{end}}{{$a}}{{end}}<br>
        {{.Comment}}
      </div>
      {{end}}
    </div>
    {{end}}
    {{if .TravelAdvice}}
    <div class="snowpack-sub">
      <h3>Travel Advice</h3>
      <ul class="snowpack-text">
        {{range .TravelAdvice}}<li>{{.}}</li>{{end}}
      </ul>
    </div>
    {{end}}
  </div>
  {{end}}
  {{end}}

  <footer>
    <h2>Live Data Sources</h2>
    <div class="link-grid">
      <a class="link-item" href="{{.ForecastURL}}" target="_blank" rel="noopener">
        Avalanche Canada — {{.RegionName}}
        <small>Daily danger ratings &amp; snowpack analysis</small>
      </a>
      <a class="link-item" href="https://weather.gc.ca/city/pages/bc-65_metric_e.html" target="_blank" rel="noopener">
        Environment Canada — Revelstoke
        <small>Official valley forecast</small>
      </a>
      <a class="link-item" href="https://aviationweather.gov/api/data/metar?ids=CYRV&amp;format=decoded" target="_blank" rel="noopener">
        CYRV Aviation METAR
        <small>Revelstoke airport obs</small>
      </a>
      <a class="link-item" href="https://open-meteo.com/" target="_blank" rel="noopener">
        Open-Meteo API
        <small>Mountain &amp; valley forecast data source</small>
      </a>
    </div>
    <div class="last-updated">Last updated: {{.Updated}}</div>
    <div class="auto-note">Auto-generated from live APIs. Always verify with primary sources before making terrain decisions.</div>
  </footer>
</div>
</body>
</html>`
