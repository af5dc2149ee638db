package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AccessResult:
		o.printAccessResult(v)
	case ValidateResult:
		o.printValidateResult(v)
	case PhotoResult:
		o.printPhotoResult(v)
	case CodesResult:
		o.printCodesResult(v)
	case GalleryResult:
		o.printGalleryResult(v)
	case SessionResult:
		o.printSessionResult(v)
	case DebugResult:
		o.printDebugResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Identity response type (matches API)
type Identity struct {
	Input         string `json:"input"`
	Key           string `json:"key,omitempty"`
	CanonicalName string `json:"canonical_name"`
	DisplayName   string `json:"display_name"`
	PhotoURL      string `json:"photo_url"`
	Memo1         string `json:"memo1,omitempty"`
	Memo2         string `json:"memo2,omitempty"`
	Found         bool   `json:"found"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}

// AccessResult combines identity and token
type AccessResult struct {
	Valid        bool     `json:"valid"`
	Identity     Identity `json:"identity"`
	SessionToken string   `json:"session_token"`
	ExpiresAt    string   `json:"expires_at"`
	Seq          int64    `json:"seq,omitempty"`
}

// ValidateResult response type
type ValidateResult struct {
	Input string `json:"input"`
	Valid bool   `json:"valid"`
}

// PhotoResult response type
type PhotoResult struct {
	PhotoURL string `json:"photo_url"`
	Tier     int    `json:"tier"`
	TierName string `json:"tier_name"`
	Found    bool   `json:"found"`
}

// CodesResult response type
type CodesResult struct {
	DisplayNames []string `json:"display_names"`
	Count        int      `json:"count"`
}

// GalleryImage response type
type GalleryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

// GalleryResult response type
type GalleryResult struct {
	Images []GalleryImage `json:"images"`
}

// SessionResult response type
type SessionResult struct {
	Identity  Identity `json:"identity"`
	ExpiresAt string   `json:"expires_at"`
}

// Attempt is one lookup in a debug trace
type Attempt struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
}

// DebugResult response type
type DebugResult struct {
	Identity   Identity  `json:"identity"`
	Collection string    `json:"collection,omitempty"`
	Aliased    bool      `json:"aliased"`
	PhotoRef   string    `json:"photo_ref_kind"`
	PhotoTier  string    `json:"photo_tier"`
	Attempts   []Attempt `json:"attempts"`
}

// significantAttempts drops plain misses from the trace
func (d DebugResult) significantAttempts() []Attempt {
	out := make([]Attempt, 0, len(d.Attempts))
	for _, a := range d.Attempts {
		if a.Outcome != "not_present" {
			out = append(out, a)
		}
	}
	return out
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (o *Output) printIdentity(i Identity) {
	fmt.Printf("Name: %s\n", i.DisplayName)
	if i.Key != "" {
		fmt.Printf("Key: %s\n", i.Key)
	}
	fmt.Printf("Found: %s\n", yesNo(i.Found))
	fmt.Printf("Photo: %s\n", i.PhotoURL)
	for _, memo := range []string{i.Memo1, i.Memo2} {
		if memo != "" {
			fmt.Printf("Memo: %s\n", memo)
		}
	}
	if i.RedirectURL != "" {
		fmt.Printf("Redirect: %s\n", i.RedirectURL)
	}
}

func (o *Output) printAccessResult(a AccessResult) {
	o.printIdentity(a.Identity)
	fmt.Printf("Token: %s\n", a.SessionToken)
	fmt.Printf("Expires: %s\n", a.ExpiresAt)
}

func (o *Output) printValidateResult(v ValidateResult) {
	status := "invalid"
	if v.Valid {
		status = "valid"
	}
	fmt.Printf("%s: %s\n", v.Input, status)
}

func (o *Output) printPhotoResult(p PhotoResult) {
	fmt.Printf("Photo: %s\n", p.PhotoURL)
	fmt.Printf("Tier: %d (%s)\n", p.Tier, p.TierName)
	fmt.Printf("Found: %s\n", yesNo(p.Found))
}

func (o *Output) printCodesResult(c CodesResult) {
	fmt.Printf("Codes (%d):\n", c.Count)
	for _, name := range c.DisplayNames {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printGalleryResult(g GalleryResult) {
	fmt.Printf("Images (%d):\n", len(g.Images))
	for _, img := range g.Images {
		caption := ""
		if img.Caption != "" {
			caption = " - " + img.Caption
		}
		fmt.Printf("  %d. %s%s\n", img.Order, img.URL, caption)
	}
}

func (o *Output) printSessionResult(s SessionResult) {
	o.printIdentity(s.Identity)
	fmt.Printf("Expires: %s\n", s.ExpiresAt)
}

func (o *Output) printDebugResult(d DebugResult) {
	o.printIdentity(d.Identity)
	if d.Collection != "" {
		fmt.Printf("Collection: %s\n", d.Collection)
	}
	fmt.Printf("Aliased: %s\n", yesNo(d.Aliased))
	fmt.Printf("Photo Ref: %s\n", d.PhotoRef)
	fmt.Printf("Photo Tier: %s\n", d.PhotoTier)
	fmt.Printf("Attempts (%d):\n", len(d.Attempts))
	for _, a := range d.Attempts {
		line := fmt.Sprintf("  %s/%s: %s", a.Collection, a.Key, a.Outcome)
		if a.Error != "" {
			line += " (" + a.Error + ")"
		}
		fmt.Println(line)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
