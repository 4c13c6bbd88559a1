package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loyaltyflow/internal/dto/resp"
	"loyaltyflow/internal/repository"
	"loyaltyflow/internal/service"
	v1 "loyaltyflow/pkg/api/v1"
	"loyaltyflow/pkg/campaign"
	"loyaltyflow/pkg/constraints"
	"loyaltyflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	logger.InitLogger("test")
}

type nopObserver struct{}

func (nopObserver) RecordEvaluation(string, string) {}
func (nopObserver) RecordLookupMiss()               {}

const testSDKKey = "issuer-key"

var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	return newTestRouterWith(t, "test", 1000, testSDKKey)
}

func newTestRouterWith(t *testing.T, env string, rps int, sdkKeys ...string) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := service.NewCampaignService(campaign.Default(), nopObserver{},
		service.WithClock(func() time.Time { return testNow }))
	auth := service.NewAuthService("test-key", time.Minute)
	r := RegisterRoutes(NewCampaignHandler(svc), RouterConfig{
		SDKRepo:           repository.NewStaticSDKKeyRepository(sdkKeys),
		Tokens:            auth,
		RequestsPerSecond: rps,
		Env:               env,
	})
	return r, auth
}

func adminRequest(t *testing.T, auth *service.AuthService, method, path string) *http.Request {
	t.Helper()
	token, err := auth.IssueAccessToken("1", "admin", constraints.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req, _ := http.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func evaluate(t *testing.T, r *gin.Engine, id string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req, _ := http.NewRequest("POST", "/v1/campaign-types/"+id+"/evaluate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constraints.HeaderSDKKey, testSDKKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListCampaignTypes(t *testing.T) {
	r, auth := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminRequest(t, auth, "GET", "/v1/campaign-types"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res resp.ListCampaignTypesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Data) != 4 || res.Data[2].ID != "isBirthday" {
		t.Errorf("unexpected list: %+v", res.Data)
	}
}

func TestListCampaignTypes_RequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/campaign-types", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestGetCampaignType(t *testing.T) {
	r, auth := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, adminRequest(t, auth, "GET", "/v1/campaign-types/isPurchaseGreaterThan"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var ct v1.CampaignType
	if err := json.Unmarshal(w.Body.Bytes(), &ct); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ct.Question != "Is the price of the purchase more than {0}?" || ct.Automatic {
		t.Errorf("unexpected campaign type: %+v", ct)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, adminRequest(t, auth, "GET", "/v1/campaign-types/unknown"))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestEvaluate(t *testing.T) {
	r, _ := newTestRouter(t)
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	bd := time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		id          string
		body        v1.EvaluationContext
		qualified   bool
		needsReview bool
		question    string
	}{
		{
			name:      "basic",
			id:        "basicCampaign",
			qualified: true,
		},
		{
			name:        "purchase threshold",
			id:          "isPurchaseGreaterThan",
			body:        v1.EvaluationContext{Values: []string{"15"}},
			needsReview: true,
			question:    "Is the price of the purchase more than 15?",
		},
		{
			name:      "birthday",
			id:        "isBirthday",
			body:      v1.EvaluationContext{User: campaign.User{Birthday: &bd}},
			qualified: true,
		},
		{
			name: "stamps reached",
			id:   "stamps",
			body: v1.EvaluationContext{
				Values:   []string{"3"},
				Purchase: &campaign.Purchase{ID: "p3", CreatedAt: testNow},
				CustomerData: campaign.CustomerData{Purchases: []campaign.Purchase{
					{ID: "p1", CreatedAt: start.Add(time.Hour)},
					{ID: "p2", CreatedAt: start.Add(48 * time.Hour)},
				}},
				Campaign: v1.CampaignWindow{Start: start},
			},
			qualified: true,
		},
		{
			name: "stamps without purchase",
			id:   "stamps",
			body: v1.EvaluationContext{
				Values:   []string{"1"},
				Campaign: v1.CampaignWindow{Start: start},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := evaluate(t, r, tt.id, tt.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var d v1.Decision
			if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if d.Qualified != tt.qualified || d.NeedsReview != tt.needsReview || d.Question != tt.question {
				t.Errorf("unexpected decision: %+v", d)
			}
			if d.CampaignType != tt.id {
				t.Errorf("expected campaign type %s, got %s", tt.id, d.CampaignType)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	r, _ := newTestRouter(t)

	w := evaluate(t, r, "unknown", v1.EvaluationContext{})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown type, got %d", w.Code)
	}

	req, _ := http.NewRequest("POST", "/v1/campaign-types/stamps/evaluate", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constraints.HeaderSDKKey, testSDKKey)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}

	req, _ = http.NewRequest("POST", "/v1/campaign-types/stamps/evaluate", bytes.NewBufferString("{}"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without SDK key, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func postEvaluate(r *gin.Engine, key string) int {
	req, _ := http.NewRequest("POST", "/v1/campaign-types/basicCampaign/evaluate", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(constraints.HeaderSDKKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestEvaluate_RateLimited(t *testing.T) {
	// limiter buckets are keyed by SDK key, so use one no other test shares
	key := uuid.New().String()
	r, _ := newTestRouterWith(t, "test", 1, key)

	if code := postEvaluate(r, key); code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", code)
	}
	if code := postEvaluate(r, key); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the bucket is empty, got %d", code)
	}
}

func TestEvaluate_LoadTestSkipsAuthAndThrottling(t *testing.T) {
	r, _ := newTestRouterWith(t, "loadtest", 1)

	for i := 0; i < 5; i++ {
		if code := postEvaluate(r, ""); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 in loadtest env, got %d", i, code)
		}
	}
}
