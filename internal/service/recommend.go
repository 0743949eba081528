package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/platefinder/api/internal/dto"
	"github.com/platefinder/api/internal/gemini"
)

// PlaceGenerator abstracts the grounded model call so the parsing and
// reconciliation logic can be exercised without the Gemini SDK.
type PlaceGenerator interface {
	GenerateGrounded(ctx context.Context, prompt string, loc dto.GeoLocation) (*gemini.GroundedAnswer, error)
}

const maxRecommendations = 5

// Placeholder values substituted for fields the model failed to produce.
const (
	fallbackName        = "未知餐廳"
	fallbackCuisine     = "未知料理"
	fallbackPrice       = "N/A"
	fallbackRating      = "N/A"
	fallbackDescription = "暫無簡介。"
)

var ordinalPrefix = regexp.MustCompile(`^\d+[.、)]\s*`)

// RecommendService turns a coordinate plus filters into restaurant records.
type RecommendService struct {
	generator PlaceGenerator
}

// NewRecommendService constructs a RecommendService.
func NewRecommendService(generator PlaceGenerator) *RecommendService {
	return &RecommendService{generator: generator}
}

// Fetch asks the model for nearby restaurants and parses the reply into at
// most five records. The operation is all-or-nothing at the network level: a
// failed model call returns no records at all, while malformed content
// inside a successful reply is degraded to placeholder values instead of
// failing. Cancellation and timeouts are the caller's responsibility via ctx.
func (s *RecommendService) Fetch(ctx context.Context, req dto.RecommendRequest) ([]dto.RestaurantRecord, error) {
	prompt := BuildPrompt(req)

	answer, err := s.generator.GenerateGrounded(ctx, prompt, req.Location())
	if err != nil {
		log.Printf("recommendation fetch failed: %v", err)
		return nil, fmt.Errorf("fetch recommendations: %w", err)
	}

	return parseAnswer(answer, req.Location()), nil
}

// BuildPrompt renders the deterministic recommendation prompt. The rigid
// pipe-delimited line format it requests is the parsing contract the next
// stage depends on; the maps tool rules out a structured-output schema.
func BuildPrompt(req dto.RecommendRequest) string {
	category := strings.TrimSpace(req.Category)
	if category == "" || category == dto.CategoryAny {
		category = "任何受歡迎的美食"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "我目前位於緯度 %.6f、經度 %.6f。", req.Latitude, req.Longitude)
	fmt.Fprintf(&b, "請使用地圖搜尋工具，在 %s 範圍內尋找價位約 %s 的「%s」，推薦正好 5 間真實存在的餐廳。", req.Distance, req.Price, category)
	b.WriteString("請以繁體中文回答，每間餐廳單獨一行，格式為：店名 | 料理類型 | 價位 | 評分 | 一句話介紹。")
	b.WriteString("不要加編號，不要使用粗體，除了這 5 行之外不要輸出任何其他文字。")
	return b.String()
}

func parseAnswer(answer *gemini.GroundedAnswer, loc dto.GeoLocation) []dto.RestaurantRecord {
	stamp := time.Now().UnixMilli()

	var records []dto.RestaurantRecord
	for _, line := range strings.Split(answer.Text, "\n") {
		if len(records) == maxRecommendations {
			break
		}
		if !strings.Contains(line, "|") {
			// The model tends to wrap the list in preamble or commentary.
			continue
		}

		fields := strings.Split(line, "|")
		name := cleanName(fieldOrDefault(fields, 0, fallbackName))
		if name == "" {
			name = fallbackName
		}

		record := dto.RestaurantRecord{
			ID:            fmt.Sprintf("rec-%d-%d", len(records), stamp),
			Name:          name,
			Cuisine:       fieldOrDefault(fields, 1, fallbackCuisine),
			PriceEstimate: fieldOrDefault(fields, 2, fallbackPrice),
			Rating:        fieldOrDefault(fields, 3, fallbackRating),
			Description:   fieldOrDefault(fields, 4, fallbackDescription),
		}
		record.MapURI = resolveMapURI(record.Name, answer.Chunks, loc)
		records = append(records, record)
	}

	return records
}

func fieldOrDefault(fields []string, idx int, fallback string) string {
	if idx >= len(fields) {
		return fallback
	}
	value := strings.TrimSpace(fields[idx])
	if value == "" {
		return fallback
	}
	return value
}

// cleanName strips the list-formatting artifacts the model applies no matter
// what the prompt says: a leading "1. " style ordinal and asterisk emphasis.
func cleanName(raw string) string {
	name := ordinalPrefix.ReplaceAllString(raw, "")
	name = strings.ReplaceAll(name, "*", "")
	return strings.TrimSpace(name)
}

// resolveMapURI links a parsed record to its grounding metadata. The first
// chunk whose title contains the name case-insensitively wins, with a maps
// URI preferred over a web URI. Without a usable match the record gets a
// synthesized maps search link, so MapURI is never empty.
func resolveMapURI(name string, chunks []gemini.GroundingChunk, loc dto.GeoLocation) string {
	needle := strings.ToLower(name)
	for _, chunk := range chunks {
		if !chunkTitleContains(chunk, needle) {
			continue
		}
		if chunk.Maps != nil && chunk.Maps.URI != "" {
			return chunk.Maps.URI
		}
		if chunk.Web != nil && chunk.Web.URI != "" {
			return chunk.Web.URI
		}
		break
	}
	return fallbackMapURI(name, loc)
}

func chunkTitleContains(chunk gemini.GroundingChunk, needle string) bool {
	if chunk.Maps != nil && chunk.Maps.Title != "" && strings.Contains(strings.ToLower(chunk.Maps.Title), needle) {
		return true
	}
	if chunk.Web != nil && chunk.Web.Title != "" && strings.Contains(strings.ToLower(chunk.Web.Title), needle) {
		return true
	}
	return false
}

func fallbackMapURI(name string, loc dto.GeoLocation) string {
	query := fmt.Sprintf("%s %.6f,%.6f", name, loc.Latitude, loc.Longitude)
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
