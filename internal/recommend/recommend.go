// Package recommend suggests related rooms from a static cross-topic
// keyword table.
package recommend

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mercyblade/roomhost-go/internal/textnorm"
)

// RoomRef points a cross-topic keyword at one room.
type RoomRef struct {
	RoomID     string `json:"roomId"`
	RoomNameEn string `json:"roomNameEn"`
	RoomNameVi string `json:"roomNameVi"`
	Relevance  string `json:"relevance"`
}

// Recommendation maps one topical keyword to the rooms it suggests.
type Recommendation struct {
	Keyword string    `json:"keyword"`
	Rooms   []RoomRef `json:"rooms"`
}

// Index is the loaded cross-topic recommendation table. It is read-only
// after Load and safe for concurrent use.
type Index struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// Load reads the cross-topic table from a JSON file. A missing file is
// not an error; recommendations are an optional enrichment and degrade
// to an empty index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cross-topic table: %w", err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse cross-topic table: %w", err)
	}
	return &idx, nil
}

// FindRelatedRooms returns up to three rooms related to the message,
// excluding the current room. A record contributes when its normalized
// keyword appears in the normalized message; only primary-relevance
// rooms qualify. Results keep first-seen order and are formatted as
// "EnglishName (VietnameseName)".
func (idx *Index) FindRelatedRooms(message, currentRoomID string) []string {
	if idx == nil || len(idx.Recommendations) == 0 {
		return nil
	}

	msg := textnorm.Normalize(message)
	if msg == "" {
		return nil
	}

	var out []string
	seen := make(map[string]struct{})

	for _, rec := range idx.Recommendations {
		keyword := textnorm.Normalize(rec.Keyword)
		if keyword == "" || !strings.Contains(msg, keyword) {
			continue
		}
		for _, ref := range rec.Rooms {
			if ref.RoomID == currentRoomID || ref.Relevance != "primary" {
				continue
			}
			label := fmt.Sprintf("%s (%s)", ref.RoomNameEn, ref.RoomNameVi)
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			out = append(out, label)
			if len(out) == 3 {
				return out
			}
		}
	}

	return out
}
