package config

// MailConfig carries the mail-relay configuration namespace. The shared
// MAIL_* values act as defaults; SMTP_* and IMAP_* variables override them
// per protocol. This is configuration plumbing only; the aggregation pipeline
// itself never sends or fetches mail.
type MailConfig struct {
	Mailer      string `env:"MAIL_MAILER, default=smtp"`
	Host        string `env:"MAIL_HOST"`
	Port        string `env:"MAIL_PORT"`
	Username    string `env:"MAIL_USERNAME"`
	Password    string `env:"MAIL_PASSWORD"`
	Encryption  string `env:"MAIL_ENCRYPTION"`
	FromAddress string `env:"MAIL_FROM_ADDRESS"`
	FromName    string `env:"MAIL_FROM_NAME"`

	SMTP SMTPConfig `env:", prefix=SMTP_"`
	IMAP IMAPConfig `env:", prefix=IMAP_"`
}

// SMTPConfig holds submission-protocol overrides.
type SMTPConfig struct {
	Host       string `env:"HOST"`
	Port       string `env:"PORT"`
	Username   string `env:"USERNAME"`
	Password   string `env:"PASSWORD"`
	Encryption string `env:"ENCRYPTION"`
}

// IMAPConfig holds retrieval-protocol overrides.
type IMAPConfig struct {
	Host          string `env:"HOST"`
	Port          string `env:"PORT"`
	Username      string `env:"USERNAME"`
	Password      string `env:"PASSWORD"`
	CheckInterval int    `env:"CHECK_INTERVAL, default=60"`
	Inbox         string `env:"INBOX, default=INBOX"`
}

func fallback(override, shared string) string {
	if override != "" {
		return override
	}
	return shared
}

// SMTPHost returns the submission host, falling back to the shared mail host.
func (m MailConfig) SMTPHost() string { return fallback(m.SMTP.Host, m.Host) }

// SMTPPort returns the submission port, falling back to the shared mail port.
func (m MailConfig) SMTPPort() string { return fallback(m.SMTP.Port, m.Port) }

// SMTPUsername returns the submission username, falling back to the shared value.
func (m MailConfig) SMTPUsername() string { return fallback(m.SMTP.Username, m.Username) }

// SMTPPassword returns the submission password, falling back to the shared value.
func (m MailConfig) SMTPPassword() string { return fallback(m.SMTP.Password, m.Password) }

// SMTPEncryption returns the submission encryption mode, falling back to the shared value.
func (m MailConfig) SMTPEncryption() string { return fallback(m.SMTP.Encryption, m.Encryption) }

// IMAPHost returns the retrieval host, falling back to the shared mail host.
func (m MailConfig) IMAPHost() string { return fallback(m.IMAP.Host, m.Host) }

// IMAPPort returns the retrieval port, falling back to the shared mail port.
func (m MailConfig) IMAPPort() string { return fallback(m.IMAP.Port, m.Port) }

// IMAPUsername returns the retrieval username, falling back to the shared value.
func (m MailConfig) IMAPUsername() string { return fallback(m.IMAP.Username, m.Username) }

// IMAPPassword returns the retrieval password, falling back to the shared value.
func (m MailConfig) IMAPPassword() string { return fallback(m.IMAP.Password, m.Password) }

// IMAPSSL reports whether the retrieval connection uses implicit TLS,
// derived from the standard IMAPS port.
func (m MailConfig) IMAPSSL() bool { return m.IMAPPort() == "993" }
