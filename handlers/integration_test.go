package handlers_test

// Integration tests against a live MongoDB instance. They are skipped
// unless MONGO_URI is set, e.g.
//
//	MONGO_URI=mongodb://localhost:27017 go test ./handlers/

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/dinu12141/CMMS-MADAMPE/config"
	"github.com/dinu12141/CMMS-MADAMPE/database"
	"github.com/dinu12141/CMMS-MADAMPE/handlers"
	"github.com/dinu12141/CMMS-MADAMPE/routes"
)

func setupIntegration(t *testing.T) *mux.Router {
	t.Helper()
	if os.Getenv("MONGO_URI") == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
	}

	config.LoadConfig()
	config.DBName = "cmms_test"

	if err := database.Connect(); err != nil {
		t.Fatalf("database connect failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.DB().Drop(ctx); err != nil {
			t.Logf("test database drop failed: %v", err)
		}
		database.Disconnect()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		t.Fatalf("index creation failed: %v", err)
	}
	handlers.InitCollections()

	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Body.Len() > 0 && rr.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rr.Body.String(), err)
		}
	}
	return rr, decoded
}

func TestSequenceNumbersAreUniqueUnderConcurrency(t *testing.T) {
	setupIntegration(t)

	const n = 25
	numbers := make([]string, n)
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			num, err := database.NextSequenceNumber(ctx, "concurrency_check", "T")
			if err != nil {
				errs <- err
				return
			}
			numbers[i] = num
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("allocation failed: %v", err)
	}

	sort.Strings(numbers)
	for i := 1; i < n; i++ {
		if numbers[i] == numbers[i-1] {
			t.Fatalf("duplicate sequence number allocated: %s", numbers[i])
		}
	}
	for i := 1; i <= n; i++ {
		want := database.FormatSequenceNumber("T", int64(i))
		found := false
		for _, num := range numbers {
			if num == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("sequence has a gap: %s never allocated", want)
		}
	}
}

func TestAssetRoundTripWithDefaults(t *testing.T) {
	router := setupIntegration(t)

	rr, created := doJSON(t, router, "POST", "/api/assets", map[string]any{
		"name":     "Chiller 2",
		"category": "HVAC",
		"location": "Plant Room",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rr.Code, rr.Body.String())
	}
	if created["status"] != "operational" || created["condition"] != "good" || created["criticality"] != "medium" {
		t.Errorf("defaults not applied: %v", created)
	}
	if created["assetNumber"] == "" || created["assetNumber"] == nil {
		t.Error("asset number was not allocated")
	}
	if created["id"] != created["_id"] {
		t.Errorf("id/_id mismatch: %v vs %v", created["id"], created["_id"])
	}

	rr, fetched := doJSON(t, router, "GET", fmt.Sprintf("/api/assets/%v", created["id"]), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get returned %d: %s", rr.Code, rr.Body.String())
	}
	if fetched["name"] != "Chiller 2" || fetched["assetNumber"] != created["assetNumber"] {
		t.Errorf("round trip changed fields: %v", fetched)
	}
}

func TestDuplicatePartNumberConflicts(t *testing.T) {
	router := setupIntegration(t)

	item := map[string]any{
		"partNumber": "PART-DUP",
		"name":       "Bearing 6204",
		"category":   "bearings",
	}

	rr, _ := doJSON(t, router, "POST", "/api/inventory", item)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first create returned %d: %s", rr.Code, rr.Body.String())
	}

	rr, body := doJSON(t, router, "POST", "/api/inventory", item)
	if rr.Code != http.StatusConflict {
		t.Fatalf("duplicate create returned %d, want %d: %s", rr.Code, http.StatusConflict, rr.Body.String())
	}
	if body["error"] == nil {
		t.Error("conflict response carries no error message")
	}
}

func TestEmptyUpdateRejected(t *testing.T) {
	router := setupIntegration(t)

	rr, created := doJSON(t, router, "POST", "/api/assets", map[string]any{
		"name":     "Boiler 1",
		"location": "Basement",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rr.Code, rr.Body.String())
	}

	_, before := doJSON(t, router, "GET", fmt.Sprintf("/api/assets/%v", created["id"]), nil)

	rr, _ = doJSON(t, router, "PUT", fmt.Sprintf("/api/assets/%v", created["id"]), map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty update returned %d, want %d", rr.Code, http.StatusBadRequest)
	}

	// The asset is untouched.
	rr, after := doJSON(t, router, "GET", fmt.Sprintf("/api/assets/%v", created["id"]), nil)
	if rr.Code != http.StatusOK || after["updatedAt"] != before["updatedAt"] {
		t.Errorf("rejected update still modified the asset: %v vs %v", after["updatedAt"], before["updatedAt"])
	}
}

func TestLocationCountersFollowAssetLifecycle(t *testing.T) {
	router := setupIntegration(t)

	rr, loc := doJSON(t, router, "POST", "/api/locations", map[string]any{
		"name": "Warehouse A",
		"type": "warehouse",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("location create returned %d: %s", rr.Code, rr.Body.String())
	}
	locID := fmt.Sprintf("%v", loc["id"])

	rr, asset := doJSON(t, router, "POST", "/api/assets", map[string]any{
		"name":     "Forklift 3",
		"location": locID,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("asset create returned %d: %s", rr.Code, rr.Body.String())
	}

	_, fetched := doJSON(t, router, "GET", "/api/locations/"+locID, nil)
	if got := fetched["assetCount"]; got != float64(1) {
		t.Errorf("assetCount after create = %v, want 1", got)
	}

	rr, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/assets/%v", asset["id"]), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("asset delete returned %d: %s", rr.Code, rr.Body.String())
	}

	_, fetched = doJSON(t, router, "GET", "/api/locations/"+locID, nil)
	if got := fetched["assetCount"]; got != float64(0) {
		t.Errorf("assetCount after delete = %v, want 0", got)
	}
}

func TestGenerateWorkOrderFromSchedule(t *testing.T) {
	router := setupIntegration(t)

	rr, pm := doJSON(t, router, "POST", "/api/pm", map[string]any{
		"name":      "Monthly belt check",
		"assetId":   "conveyor-1",
		"frequency": "monthly",
		"nextDue":   time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339),
		"priority":  "high",
		"tasks":     []string{"Inspect belt tension"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("PM create returned %d: %s", rr.Code, rr.Body.String())
	}

	rr, wo := doJSON(t, router, "POST", fmt.Sprintf("/api/pm/%v/generate-wo", pm["id"]), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("generate returned %d: %s", rr.Code, rr.Body.String())
	}
	if wo["title"] != "PM: Monthly belt check" || wo["type"] != "preventive" || wo["status"] != "open" {
		t.Errorf("generated work order wrong: %v", wo)
	}
	if wo["createdBy"] != "PM Scheduler" {
		t.Errorf("createdBy = %v", wo["createdBy"])
	}

	// Generating twice yields two separate work orders.
	rr, second := doJSON(t, router, "POST", fmt.Sprintf("/api/pm/%v/generate-wo", pm["id"]), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("second generate returned %d: %s", rr.Code, rr.Body.String())
	}
	if second["workOrderNumber"] == wo["workOrderNumber"] {
		t.Error("second generation reused the same work order number")
	}
}

func TestRegisterLoginAndMe(t *testing.T) {
	router := setupIntegration(t)

	rr, _ := doJSON(t, router, "POST", "/api/auth/register", map[string]any{
		"username":   "s.perera",
		"email":      "s.perera@example.com",
		"password":   "changeme1",
		"name":       "S. Perera",
		"role":       "Technician",
		"department": "Maintenance",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rr.Code, rr.Body.String())
	}

	rr, login := doJSON(t, router, "POST", "/api/auth/login", map[string]any{
		"username": "s.perera",
		"password": "changeme1",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rr.Code, rr.Body.String())
	}
	token, _ := login["access_token"].(string)
	if token == "" {
		t.Fatal("login response has no access_token")
	}

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", resp.Code, resp.Body.String())
	}
	var me map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me["username"] != "s.perera" {
		t.Errorf("me returned wrong user: %v", me)
	}
	if _, leaked := me["passwordHash"]; leaked {
		t.Error("password hash leaked in response")
	}

	// Wrong password is a 401, not a 404.
	rr, _ = doJSON(t, router, "POST", "/api/auth/login", map[string]any{
		"username": "s.perera",
		"password": "wrong",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("bad login returned %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
