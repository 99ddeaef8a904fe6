// Package share encodes calculator inputs into the ?state= token used by shared links.
//
// The token is base64 over the inputs JSON. Tokens produced by the browser
// client (btoa(encodeURIComponent(json))) decode as well.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/carlos-rodrigo/margen-agro/internal/calculator"
	"github.com/carlos-rodrigo/margen-agro/internal/model"

	"github.com/shopspring/decimal"
)

// StateParam is the query parameter carrying the token.
const StateParam = "state"

var ErrEstadoInvalido = errors.New("estado compartido invalido")

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// Encode serializes in as standard base64 JSON.
func Encode(in model.CalculatorInputs) (string, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("share: marshal inputs: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses a token and merges it onto DefaultInputs, so any section or
// field missing from the token keeps its default value.
func Decode(token string) (model.CalculatorInputs, error) {
	raw, err := decodeBase64(strings.TrimSpace(token))
	if err != nil {
		return model.CalculatorInputs{}, fmt.Errorf("%w: %v", ErrEstadoInvalido, err)
	}

	// Browser tokens are percent-encoded before base64.
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		unescaped, err := url.QueryUnescape(string(raw))
		if err != nil {
			return model.CalculatorInputs{}, fmt.Errorf("%w: %v", ErrEstadoInvalido, err)
		}
		raw = []byte(unescaped)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return model.CalculatorInputs{}, fmt.Errorf("%w: %v", ErrEstadoInvalido, err)
	}
	if _, ok := probe["produccion"]; !ok {
		return model.CalculatorInputs{}, fmt.Errorf("%w: falta produccion", ErrEstadoInvalido)
	}

	in := calculator.DefaultInputs()
	if err := json.Unmarshal(raw, &in); err != nil {
		return model.CalculatorInputs{}, fmt.Errorf("%w: %v", ErrEstadoInvalido, err)
	}
	return in, nil
}

func decodeBase64(s string) ([]byte, error) {
	var lastErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// ShareURL returns base with the state parameter set to token (see Encode).
// Existing query parameters on base are preserved.
func ShareURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: parse base url: %w", err)
	}
	q := u.Query()
	q.Set(StateParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ShareText is the message prefilled in the share dialog.
func ShareText(cultivo string, margenHa decimal.Decimal) string {
	return fmt.Sprintf("Calculé mi margen bruto de %s: USD %s/ha con RindeMax", cultivo, margenHa.StringFixed(2))
}

// Redes holds ready-to-open share intents for each social network.
type Redes struct {
	Twitter  string `json:"twitter"`
	WhatsApp string `json:"whatsapp"`
	LinkedIn string `json:"linkedin"`
}

// ShareIntents builds the social share links for a shared URL and its text.
func ShareIntents(shareURL, texto string) Redes {
	return Redes{
		Twitter:  "https://twitter.com/intent/tweet?text=" + url.QueryEscape(texto) + "&url=" + url.QueryEscape(shareURL),
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(texto+"\n"+shareURL),
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(shareURL),
	}
}
