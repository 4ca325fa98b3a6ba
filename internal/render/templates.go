package render

import "text/template"

// nginxSiteTemplate is the reverse-proxy site fronting the Trinity API.
var nginxSiteTemplate = template.Must(template.New("nginx-site").Parse(`# Managed by trinityctl. Manual edits will be overwritten on the next run.
server {
    listen {{.ProxyPort}};
    server_name {{.ServerName}};

    location /health {
        proxy_pass http://127.0.0.1:{{.APIPort}}/health;
        proxy_connect_timeout 5s;
        proxy_read_timeout 10s;
    }

    location /status {
        proxy_pass http://127.0.0.1:{{.APIPort}}/status;
    }

    location /consciousness/ {
        proxy_pass http://127.0.0.1:{{.APIPort}}/consciousness/;
    }

    location / {
        proxy_pass http://127.0.0.1:{{.APIPort}};
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
    }
}
`))

// nginxSiteData parameterizes the nginx site template.
type nginxSiteData struct {
	ProxyPort  int
	APIPort    int
	ServerName string
}

// unitTemplate renders a systemd service unit for a Trinity component.
var unitTemplate = template.Must(template.New("unit").Parse(`# Managed by trinityctl. Manual edits will be overwritten on the next run.
[Unit]
Description={{.Description}}
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
User={{.User}}
Group={{.User}}
ExecStart={{.ExecStart}}
WorkingDirectory={{.WorkingDirectory}}
Environment=TRINITY_CONFIG={{.ConfigPath}}
Restart=on-failure
RestartSec=5
NoNewPrivileges=true
ProtectSystem=strict
ReadWritePaths={{.DataDir}} {{.LogDir}}

[Install]
WantedBy=multi-user.target
`))

// unitData parameterizes the systemd unit template.
type unitData struct {
	Description      string
	User             string
	ExecStart        string
	WorkingDirectory string
	ConfigPath       string
	DataDir          string
	LogDir           string
}
