package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/okvist/dash-input/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"modeOrUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"round1": func(v float64) string {
		return fmt.Sprintf("%.1f", v)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Dash Input</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.read { color: green; font-weight: bold; }
.clear { color: #c60; font-weight: bold; }
.unknown { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
.fault { color: red; font-weight: bold; }
</style>
</head>
<body>
<h1>Dash Input</h1>

<h2>State</h2>
<table>
<tr><th>Page</th><td>{{.Page}}</td></tr>
<tr><th>Toggle Mode</th><td class="{{if eq (modeOrUnknown (printf "%s" .Mode)) "READ"}}read{{else if eq (modeOrUnknown (printf "%s" .Mode)) "CLEAR"}}clear{{else}}unknown{{end}}">{{modeOrUnknown (printf "%s" .Mode)}}</td></tr>
{{if .Advisory}}<tr><th>Advisory</th><td class="fault">{{.Advisory}}</td></tr>{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} — {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

{{if .Vehicle}}
<h2>Vehicle</h2>
<table>
<tr><th>Speed</th><td>{{round1 .Vehicle.Speed}} km/h</td></tr>
<tr><th>RPM</th><td>{{round1 .Vehicle.RPM}}</td></tr>
<tr><th>Coolant</th><td>{{round1 .Vehicle.CoolantTemp}} °C</td></tr>
<tr><th>Oil</th><td>{{round1 .Vehicle.OilTemp}} °C</td></tr>
<tr><th>Fuel rate</th><td>{{round1 .Vehicle.FuelRate}} L/h</td></tr>
</table>
{{end}}

{{if .LastCodes}}
<h2>Fault Codes</h2>
<table>
{{range .LastCodes}}<tr><th class="fault">{{.Code}}</th><td>{{.Description}}</td></tr>
{{end}}</table>
{{end}}

<h2>Event Counts</h2>
<table>
<tr><th>Pages advanced</th><td>{{.Counts.PagesAdvanced}}</td></tr>
<tr><th>Read requests</th><td>{{.Counts.ReadRequests}}</td></tr>
<tr><th>Clear requests</th><td>{{.Counts.ClearRequests}}</td></tr>
<tr><th>No-ops</th><td>{{.Counts.NoOps}}</td></tr>
<tr><th>Wiring faults</th><td>{{.Counts.WiringFaults}}</td></tr>
<tr><th>Mode changes</th><td>{{.Counts.ModeChanges}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Data</th><td>{{.Config.DataMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
<tr><th>Pins</th><td>action={{.Config.ActionPin}} read={{.Config.ToggleReadPin}} clear={{.Config.ToggleClearPin}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
