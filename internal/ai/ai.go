// Package ai is the optional marketplace assistant. Gemini answers
// questions and may call a tool that runs read-only SQL.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/google/generative-ai-go/genai"
	"github.com/jmoiron/sqlx"
	"google.golang.org/api/option"
)

const (
	sqlToolName = "run_readonly_sql"
	maxToolRows = 200
	// Bound on tool round-trips per question.
	maxToolCalls = 5
)

// AIService holds the Gemini client and the read-only database connection.
type AIService struct {
	client *genai.Client
	db     *sqlx.DB
	model  string
}

// NewAIService initializes the Gemini client. db should log in as a user
// that only has SELECT grants and cannot read users.password_hash. The
// assistant is served to administrators only; the queries it runs are not
// scoped to a tenant.
func NewAIService(ctx context.Context, apiKey, model string, db *sqlx.DB) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{client: client, db: db, model: model}, nil
}

func (s *AIService) Close() error {
	return s.client.Close()
}

// GenerateResponse answers a question from the given user.
func (s *AIService) GenerateResponse(ctx context.Context, userMessage string, p auth.Principal) (string, error) {
	model := s.client.GenerativeModel(s.model)

	// 1. --- Tools ---
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        sqlToolName,
			Description: "Executes a READ-ONLY SQL query (SELECT only) to answer questions.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "The SELECT query to execute.",
					},
				},
				Required: []string{"query"},
			},
		}},
	}}

	// 2. --- System instructions ---
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`
			You are the ContainerHub assistant for a B2B marketplace.
			The user is administrator %d (role %s) and may see every record.
			Database dialect: %s, accessed through %s.
			Schema: %s
			Rules: SELECT only, name every column (no SELECT *), never select password_hash. Be concise. Prices are decimals; weights in kg; lengths in cm; volume = l*w*h/1000000 m³.
		`, p.ID, p.Role, s.db.DriverName(), sqlToolName, schemaDefinition))},
	}

	// 3. --- Chat, resolving tool calls ---
	cs := model.StartChat()
	res, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}

	for calls := 0; ; calls++ {
		if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
			return "No response.", nil
		}
		part := res.Candidates[0].Content.Parts[0]

		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			return fmt.Sprintf("%v", part), nil
		}
		if funcCall.Name != sqlToolName {
			return "", fmt.Errorf("unknown function: %s", funcCall.Name)
		}
		if calls >= maxToolCalls {
			return "", errors.New("too many tool calls")
		}

		query, ok := funcCall.Args["query"].(string)
		if !ok {
			return "", errors.New("invalid query argument")
		}
		log.Printf("AI running SQL for user %d: %s", p.ID, query)

		result, sqlErr := s.runReadOnlyQuery(ctx, query)
		if sqlErr != nil {
			result = fmt.Sprintf("SQL Error: %v", sqlErr)
		}

		res, err = cs.SendMessage(ctx, genai.FunctionResponse{
			Name:     sqlToolName,
			Response: map[string]any{"result": result},
		})
		if err != nil {
			return "", fmt.Errorf("tool response error: %w", err)
		}
	}
}

var (
	readOnlyStart     = regexp.MustCompile(`(?i)^\s*(SELECT|WITH)\b`)
	writeKeywords     = regexp.MustCompile(`(?i)\b(INSERT|UPDATE|DELETE|DROP|ALTER|CREATE|TRUNCATE|REPLACE|GRANT|REVOKE|MERGE|CALL|LOCK|ATTACH|PRAGMA|INTO)\b`)
	restrictedColumns = regexp.MustCompile(`(?i)\bpassword_hash\b|(\bSELECT\s+(DISTINCT\s+)?|,\s*|\.)\*`)
	ErrNotReadOnly    = errors.New("security violation: only single SELECT statements are allowed")
	ErrRestricted     = errors.New("security violation: query names a restricted column or uses *")
)

// ValidateReadOnly accepts a single SELECT (or WITH ... SELECT) statement
// that names its columns. Anything that could write, SELECT * and the
// password hash column are rejected.
func ValidateReadOnly(query string) error {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	if strings.Contains(q, ";") || !readOnlyStart.MatchString(q) || writeKeywords.MatchString(q) {
		return ErrNotReadOnly
	}
	if restrictedColumns.MatchString(q) {
		return ErrRestricted
	}
	return nil
}

func (s *AIService) runReadOnlyQuery(ctx context.Context, query string) (string, error) {
	if err := ValidateReadOnly(query); err != nil {
		return "", err
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	tableData := []map[string]any{}
	for rows.Next() && len(tableData) < maxToolRows {
		entry := make(map[string]any)
		if err := rows.MapScan(entry); err != nil {
			return "", err
		}
		for k, v := range entry {
			if b, ok := v.([]byte); ok {
				entry[k] = string(b)
			}
		}
		tableData = append(tableData, entry)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(tableData)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

const schemaDefinition = `
	- users (id, email, name, role [ADMIN, SUPPLIER, IMPORTER], active, created_at)
	- categories (id, name, slug, created_at)
	- products (id, supplier_id, category_id, code, name, description, image_url, price, weight, length, width, height, created_at, updated_at)
	- collaborations (id, supplier_id, importer_id, status [PENDING, APPROVED, REJECTED], created_at, decided_at)
	- containers (id, importer_id, name, max_weight, max_volume, max_price, created_at)
	- container_items (id, container_id, product_id, quantity, created_at, updated_at)
	- notifications (id, user_id, message, link, is_read, created_at)
	`
