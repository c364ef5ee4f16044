// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// Turn is one utterance in a conversation, attributed to a speaker role.
// Its JSON form is the single-key object {<role>: <text>} used by script
// files and the combined discussion dataset. Per prd003-dataset R2.1.
type Turn struct {
	Role string `yaml:"role"`
	Text string `yaml:"text"`
}

// MarshalJSON renders the turn as {<role>: <text>}.
func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{t.Role: t.Text})
}

// UnmarshalJSON accepts the single-key object form.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var kv map[string]string
	if err := json.Unmarshal(data, &kv); err != nil {
		return err
	}
	if len(kv) != 1 {
		return fmt.Errorf("turn: want exactly one role key, got %d", len(kv))
	}
	for role, text := range kv {
		t.Role, t.Text = role, text
	}
	return nil
}

// CaseRecord is the parsed form of one case discussion: who the client is,
// which category the discussion covers, and the conversation in document
// order. Per prd003-dataset R2.2.
type CaseRecord struct {
	// ClientName is the capitalized first name run from the source filename
	// (e.g. "Megan" from meganDenial.rtf).
	ClientName string `json:"clientName" yaml:"client_name"`

	// Category is the remaining filename runs, lower-cased and concatenated
	// (e.g. "denial").
	Category string `json:"category" yaml:"category"`

	// Conversation holds the discussion turns in document order.
	Conversation []Turn `json:"conversation" yaml:"conversation"`
}

// DiscussionSet is the combined dataset: one record per source document.
// It serializes as a JSON array.
type DiscussionSet []CaseRecord
