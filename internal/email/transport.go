package email

// TransportOptions is the connection security policy derived from an
// account's port and stored secure flag.
type TransportOptions struct {
	Secure     bool // Implicit TLS from the first byte
	RequireTLS bool // Fail unless STARTTLS succeeds
	IgnoreTLS  bool // Never attempt STARTTLS
}

// NormalizeTransport maps a port and stored secure flag to a policy:
//
//	587   -> STARTTLS required
//	465   -> implicit TLS
//	25    -> plain, STARTTLS never attempted
//	other -> stored secure flag, STARTTLS required when not secure
func NormalizeTransport(port int, secure bool) TransportOptions {
	switch port {
	case 587:
		return TransportOptions{Secure: false, RequireTLS: true}
	case 465:
		return TransportOptions{Secure: true, RequireTLS: false}
	case 25:
		return TransportOptions{Secure: false, RequireTLS: false, IgnoreTLS: true}
	default:
		return TransportOptions{Secure: secure, RequireTLS: !secure}
	}
}
