// Command verify checks room content files for data-quality problems
// before they reach the serving database: unparsable JSON, rooms without
// keyword groups or entries, entries with no extractable bilingual text,
// and cross-topic recommendation records that can never fire.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mercyblade/roomhost-go/internal/recommend"
	"github.com/mercyblade/roomhost-go/internal/room"
	"github.com/mercyblade/roomhost-go/internal/textnorm"
)

// Verification results
type verifyResult struct {
	name    string
	passed  bool
	message string
}

func main() {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	fmt.Println("🔍 Room Content Verification Tool")
	fmt.Println("==================================")
	fmt.Printf("Data directory: %s\n", dataDir)

	results := []verifyResult{}
	results = append(results, verifyRoomFiles(dataDir)...)
	results = append(results, verifyCrossTopicTable(dataDir)...)

	fmt.Println("\n📊 Verification Results:")
	fmt.Println("========================")

	passedCount := 0
	failedCount := 0

	for _, result := range results {
		status := "❌"
		if result.passed {
			status = "✅"
			passedCount++
		} else {
			failedCount++
		}
		fmt.Printf("%s %s: %s\n", status, result.name, result.message)
	}

	fmt.Printf("\n📈 Summary: %d passed, %d failed\n", passedCount, failedCount)

	if failedCount > 0 {
		os.Exit(1)
	}
}

// verifyRoomFiles parses every room file and checks its structure
func verifyRoomFiles(dataDir string) []verifyResult {
	results := []verifyResult{}

	paths, err := filepath.Glob(filepath.Join(dataDir, "*.json"))
	if err != nil || len(paths) == 0 {
		return append(results, verifyResult{
			name:    "Room Files Present",
			passed:  false,
			message: fmt.Sprintf("No room files found in %s", dataDir),
		})
	}

	results = append(results, verifyResult{
		name:    "Room Files Present",
		passed:  true,
		message: fmt.Sprintf("%d room files found", len(paths)),
	})

	for _, path := range paths {
		roomID := strings.TrimSuffix(filepath.Base(path), ".json")
		results = append(results, verifyRoomFile(roomID, path)...)
	}

	return results
}

func verifyRoomFile(roomID, path string) []verifyResult {
	results := []verifyResult{}

	body, err := os.ReadFile(path)
	if err != nil {
		return append(results, verifyResult{
			name:    fmt.Sprintf("Room %s Readable", roomID),
			passed:  false,
			message: err.Error(),
		})
	}

	rm, err := room.Parse(roomID, body)
	if err != nil {
		return append(results, verifyResult{
			name:    fmt.Sprintf("Room %s Parses", roomID),
			passed:  false,
			message: err.Error(),
		})
	}

	results = append(results, verifyResult{
		name:    fmt.Sprintf("Room %s Parses", roomID),
		passed:  true,
		message: fmt.Sprintf("%d keyword groups", len(rm.Groups)),
	})

	// Rooms without keyword groups can only ever escalate
	results = append(results, verifyResult{
		name:    fmt.Sprintf("Room %s Keyword Groups", roomID),
		passed:  len(rm.Groups) > 0,
		message: fmt.Sprintf("%d groups", len(rm.Groups)),
	})

	// Every group should carry at least one usable keyword
	emptyGroups := []string{}
	for _, g := range rm.Groups {
		usable := false
		for _, kw := range g.Candidates() {
			if textnorm.Normalize(kw) != "" {
				usable = true
				break
			}
		}
		if !usable {
			emptyGroups = append(emptyGroups, g.Key)
		}
	}
	results = append(results, verifyResult{
		name:    fmt.Sprintf("Room %s Group Keywords Usable", roomID),
		passed:  len(emptyGroups) == 0,
		message: groupMessage(emptyGroups),
	})

	// Entries must yield bilingual text; silent empty replies are a
	// data-quality bug
	results = append(results, verifyEntries(roomID, rm))

	// Audio coverage is informational: entries without audio still serve
	// text replies
	results = append(results, verifyAudioCoverage(roomID, rm))

	return results
}

func verifyAudioCoverage(roomID string, rm *room.Room) verifyResult {
	total := 0
	withAudio := 0

	count := func(e room.Entry) {
		total++
		if e.AudioRef() != "" {
			withAudio++
		}
	}

	if rm.Keyed() {
		for _, g := range rm.Groups {
			if e, ok := rm.EntryForKey(g.Key); ok {
				count(e)
			}
		}
	} else {
		for _, e := range rm.Entries() {
			count(e)
		}
	}

	return verifyResult{
		name:    fmt.Sprintf("Room %s Audio Coverage", roomID),
		passed:  true,
		message: fmt.Sprintf("%d/%d entries carry audio", withAudio, total),
	}
}

func verifyEntries(roomID string, rm *room.Room) verifyResult {
	name := fmt.Sprintf("Room %s Entries Extractable", roomID)

	if rm.Keyed() {
		unusable := []string{}
		for _, g := range rm.Groups {
			e, ok := rm.EntryForKey(g.Key)
			if !ok {
				continue
			}
			if room.ExtractEntryBilingual(e).Empty() {
				unusable = append(unusable, g.Key)
			}
		}
		return verifyResult{
			name:    name,
			passed:  len(unusable) == 0,
			message: entryMessage(unusable),
		}
	}

	entries := rm.Entries()
	if len(entries) == 0 {
		return verifyResult{
			name:    name,
			passed:  false,
			message: "no entries",
		}
	}

	unusable := []string{}
	for i, e := range entries {
		if room.ExtractEntryBilingual(e).Empty() {
			id := e.ID()
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			unusable = append(unusable, id)
		}
	}
	return verifyResult{
		name:    name,
		passed:  len(unusable) == 0,
		message: entryMessage(unusable),
	}
}

// verifyCrossTopicTable checks the recommendation table
func verifyCrossTopicTable(dataDir string) []verifyResult {
	results := []verifyResult{}
	path := filepath.Join(dataDir, "system", "cross_topic_recommendations.json")

	idx, err := recommend.Load(path)
	if err != nil {
		return append(results, verifyResult{
			name:    "Cross-Topic Table Parses",
			passed:  false,
			message: err.Error(),
		})
	}

	results = append(results, verifyResult{
		name:    "Cross-Topic Table Parses",
		passed:  true,
		message: fmt.Sprintf("%d records", len(idx.Recommendations)),
	})

	// Records with blank keywords or no primary rooms never fire
	dead := []string{}
	for _, rec := range idx.Recommendations {
		if textnorm.Normalize(rec.Keyword) == "" {
			dead = append(dead, fmt.Sprintf("%q (blank keyword)", rec.Keyword))
			continue
		}
		hasPrimary := false
		for _, ref := range rec.Rooms {
			if ref.Relevance == "primary" {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			dead = append(dead, fmt.Sprintf("%q (no primary rooms)", rec.Keyword))
		}
	}
	results = append(results, verifyResult{
		name:    "Cross-Topic Records Usable",
		passed:  len(dead) == 0,
		message: entryMessage(dead),
	})

	return results
}

func groupMessage(keys []string) string {
	if len(keys) == 0 {
		return "All groups have usable keywords"
	}
	return fmt.Sprintf("Groups without usable keywords: %s", strings.Join(keys, ", "))
}

func entryMessage(ids []string) string {
	if len(ids) == 0 {
		return "OK"
	}
	return fmt.Sprintf("Problems: %s", strings.Join(ids, ", "))
}
