package company

type Profile struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Address            string `json:"address"`
	ContactEmail       string `json:"contactEmail"`
	ContactNumber      string `json:"contactNumber"`
	LogoPath           string `json:"logoPath"`
	SignaturePath      string `json:"signaturePath"`

	SMTPHost   string `json:"smtpHost"`
	SMTPPort   int    `json:"smtpPort"`
	SMTPUser   string `json:"smtpUser"`
	SMTPPass   string `json:"-"`
	SMTPFrom   string `json:"smtpFrom"`
	SMTPSecure bool   `json:"smtpSecure"`
}
