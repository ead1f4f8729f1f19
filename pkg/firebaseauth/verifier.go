package firebaseauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/PTD504/math-ocr-chatbot-backend/internal/constants"
	"github.com/PTD504/math-ocr-chatbot-backend/internal/models"
)

var (
	// ErrNotInitialized means no service account credentials were available
	// at startup. Callers translate this to 503, not 401.
	ErrNotInitialized = errors.New("firebase admin credentials are not configured")

	// ErrInvalidToken covers malformed, expired and wrongly signed tokens.
	ErrInvalidToken = errors.New("invalid authentication credentials")
)

const issuerPrefix = "https://securetoken.google.com/"

// Verifier checks a Firebase ID token and returns the identity it carries.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*models.UserProfile, error)
}

type Config struct {
	// ServiceAccountJSON is the key as an inline JSON blob. Preferred for
	// deployments; takes precedence over the path.
	ServiceAccountJSON string

	// ServiceAccountPath is a key file on disk, for local runs.
	ServiceAccountPath string

	// CertsURL overrides the Google securetoken cert endpoint. Tests only.
	CertsURL string
}

type serviceAccount struct {
	ProjectID string `json:"project_id"`
}

type verifier struct {
	projectID string
	certs     *certSource
	parser    *jwt.Parser
}

// New builds a Verifier from service account credentials. It fails when
// neither the inline JSON nor the key file yields a project id.
func New(cfg Config) (Verifier, error) {
	raw := []byte(cfg.ServiceAccountJSON)
	if len(raw) == 0 && cfg.ServiceAccountPath != "" {
		fileRaw, err := os.ReadFile(cfg.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotInitialized, err)
		}
		raw = fileRaw
	}
	if len(raw) == 0 {
		return nil, ErrNotInitialized
	}

	var account serviceAccount
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, fmt.Errorf("%w: invalid service account JSON: %v", ErrNotInitialized, err)
	}
	if account.ProjectID == "" {
		return nil, fmt.Errorf("%w: service account JSON has no project_id", ErrNotInitialized)
	}

	return &verifier{
		projectID: account.ProjectID,
		certs:     newCertSource(cfg.CertsURL),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithAudience(account.ProjectID),
			jwt.WithIssuer(issuerPrefix+account.ProjectID),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}, nil
}

// Disabled returns a Verifier that rejects everything with ErrNotInitialized.
// Used when the process starts without credentials so auth endpoints can
// answer 503 instead of the server refusing to boot.
func Disabled() Verifier {
	return disabledVerifier{}
}

type disabledVerifier struct{}

func (disabledVerifier) Verify(ctx context.Context, idToken string) (*models.UserProfile, error) {
	return nil, ErrNotInitialized
}

func (v *verifier) Verify(ctx context.Context, idToken string) (*models.UserProfile, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	token, err := v.parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token has no kid header")
		}
		return v.certs.publicKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	uid, err := claims.GetSubject()
	if err != nil || uid == "" {
		return nil, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}

	return profileFromClaims(uid, claims), nil
}

func profileFromClaims(uid string, claims jwt.MapClaims) *models.UserProfile {
	email := optionalString(claims, "email")

	name, _ := claims["name"].(string)
	if name == "" {
		if email != nil {
			name = *email
		} else {
			name = constants.DefaultUserName
		}
	}

	isAnonymous := false
	if fb, ok := claims["firebase"].(map[string]interface{}); ok {
		provider, _ := fb["sign_in_provider"].(string)
		isAnonymous = provider == constants.AnonymousSignInProvider
	}

	return &models.UserProfile{
		UID:         uid,
		Email:       email,
		Name:        name,
		Picture:     optionalString(claims, "picture"),
		IsAnonymous: isAnonymous,
	}
}

func optionalString(claims jwt.MapClaims, key string) *string {
	if value, ok := claims[key].(string); ok && value != "" {
		return &value
	}
	return nil
}
