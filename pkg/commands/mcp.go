package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindease/pkg/chat"
	"tableflip.dev/mindease/pkg/runner/mcp"
)

// MCPOptions are the flags of the mcp command.
type MCPOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
}

func addMCP(topLevel *cobra.Command) {
	o := &MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets an assistant read and write journal entries,
chart moods and talk with ` + chat.Name + ` through the Model Context Protocol.`,
		Example: `
mindease mcp
mindease mcp --transport stdio
mindease mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := o.runner()
			if err != nil {
				return err
			}
			sess, _, err := loadSession()
			if err != nil {
				return err
			}
			runner.Journal = sess.Journal
			if runner.Transport == mcp.TransportHTTP {
				out := cmd.OutOrStdout()
				tls := runner.HTTPServerCert != "" && runner.HTTPServerKey != ""
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(out, "MCP HTTP server listening on %s\n",
						listenURL(a, o.Host, runner.HTTPEndpointPath, tls))
				}
			}
			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&o.Transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// runner validates the flags. The journal is attached by the caller.
func (o *MCPOptions) runner() (mcp.Runner, error) {
	path := strings.TrimSpace(o.Path)
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	r := mcp.Runner{
		Name:             "mindease",
		Version:          version,
		HTTPEndpointPath: path,
		HTTPServerCert:   strings.TrimSpace(o.TLSCert),
		HTTPServerKey:    strings.TrimSpace(o.TLSKey),
	}
	if (r.HTTPServerCert == "") != (r.HTTPServerKey == "") {
		return r, fmt.Errorf("--http-tls-cert and --http-tls-key must be given together")
	}

	switch strings.ToLower(strings.TrimSpace(o.Transport)) {
	case "", string(mcp.TransportHTTP):
		host := strings.TrimSpace(o.Host)
		if host == "" {
			host = "127.0.0.1"
		}
		if o.Port < 0 || o.Port > 65535 {
			return r, fmt.Errorf("invalid http-port %d", o.Port)
		}
		r.Transport = mcp.TransportHTTP
		r.HTTPListenAddr = net.JoinHostPort(host, strconv.Itoa(o.Port))
	case string(mcp.TransportStdio):
		r.Transport = mcp.TransportStdio
	default:
		return r, fmt.Errorf("unsupported transport %q (expected http or stdio)", o.Transport)
	}
	return r, nil
}

// listenURL is the address clients should use, replacing wildcard hosts
// with something dialable.
func listenURL(a net.Addr, host, path string, tls bool) string {
	scheme := "http"
	if tls {
		scheme = "https"
	}
	tcp, ok := a.(*net.TCPAddr)
	if !ok {
		return scheme + "://" + a.String() + path
	}

	display := strings.TrimSpace(host)
	if display == "" || display == "0.0.0.0" || display == "::" {
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			display = tcp.IP.String()
		} else {
			display = "127.0.0.1"
		}
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(display, strconv.Itoa(tcp.Port)), path)
}
