package nerveshub

// Credential selects how requests authenticate to the NervesHub API. Exactly
// one concrete form is supplied per Config: CertificateCredential for mutual
// TLS or TokenCredential for bearer-token authentication. The form is
// validated once, at client construction.
type Credential interface {
	// Kind names the credential form for logs and error messages.
	Kind() string

	validate() error
}

// CertificateCredential authenticates with a client certificate and private
// key over mutual TLS. Both values are PEM encoded.
type CertificateCredential struct {
	CertPEM []byte
	KeyPEM  []byte
}

// Kind implements Credential.
func (c CertificateCredential) Kind() string {
	return "certificate"
}

func (c CertificateCredential) validate() error {
	if len(c.CertPEM) == 0 || len(c.KeyPEM) == 0 {
		return ErrIncompleteCertificate
	}

	return nil
}

// TokenCredential authenticates with an opaque bearer token sent in the
// Authorization header.
type TokenCredential struct {
	Token string
}

// Kind implements Credential.
func (c TokenCredential) Kind() string {
	return "token"
}

func (c TokenCredential) validate() error {
	if c.Token == "" {
		return ErrEmptyToken
	}

	return nil
}
