package analysis

var commonPorts = map[string]string{
	"20":   "FTP-DATA",
	"21":   "FTP",
	"22":   "SSH",
	"23":   "Telnet",
	"25":   "SMTP",
	"53":   "DNS",
	"67":   "DHCP",
	"68":   "DHCP",
	"80":   "HTTP",
	"110":  "POP3",
	"123":  "NTP",
	"143":  "IMAP",
	"443":  "HTTPS",
	"853":  "DNS-over-TLS",
	"3306": "MySQL",
	"5353": "mDNS",
	"5432": "PostgreSQL",
	"6379": "Redis",
	"8080": "HTTP-Alt",
}

// ServiceName returns the common name for a port, or "unknown".
func ServiceName(port string) string {
	if name, ok := commonPorts[port]; ok {
		return name
	}
	return "unknown"
}
