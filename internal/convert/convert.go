// Package convert maps recognized Chinese text onto the target script.
package convert

import (
	"fmt"
	"strings"
	"sync"

	"github.com/longbridgeapp/opencc"
)

// DefaultProfile converts Simplified Chinese to Traditional Chinese with
// Taiwan phrasing.
const DefaultProfile = "s2twp"

// Converter rewrites text into another script.
type Converter interface {
	Convert(text string) (string, error)
}

// Identity leaves text untouched.
type Identity struct{}

// Convert implements Converter.
func (Identity) Convert(text string) (string, error) {
	return text, nil
}

// OpenCC converts with an OpenCC dictionary profile. The underlying
// converter keeps internal state, so calls are serialized.
type OpenCC struct {
	profile string

	mu sync.Mutex
	cc *opencc.OpenCC
}

// NewOpenCC loads the dictionaries for profile (for example s2twp or s2t).
func NewOpenCC(profile string) (*OpenCC, error) {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		profile = DefaultProfile
	}
	cc, err := opencc.New(profile)
	if err != nil {
		return nil, fmt.Errorf("load opencc profile %q: %w", profile, err)
	}
	return &OpenCC{profile: profile, cc: cc}, nil
}

// Profile returns the loaded profile name.
func (o *OpenCC) Profile() string {
	return o.profile
}

// Convert implements Converter.
func (o *OpenCC) Convert(text string) (string, error) {
	if text == "" {
		return text, nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	out, err := o.cc.Convert(text)
	if err != nil {
		return "", fmt.Errorf("opencc %s: %w", o.profile, err)
	}
	return out, nil
}

// New returns the converter for profile; "none" selects Identity.
func New(profile string) (Converter, error) {
	if strings.EqualFold(strings.TrimSpace(profile), "none") {
		return Identity{}, nil
	}
	return NewOpenCC(profile)
}
