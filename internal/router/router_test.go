package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-shop-api/internal/platform/token"
	"pet-shop-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tokens, err := token.NewManager("router-test-secret-router-test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return httptest.NewServer(router.NewRouter(router.Options{Tokens: tokens}))
}

func TestHTTP_EndToEnd_OwnershipPolicy(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// 1) Dos cuentas
	_, tokenA := register(t, ts.URL, "Alice", "alice@example.com")
	_, tokenB := register(t, ts.URL, "Bob", "bob@example.com")

	// 2) Registrar con email duplicado => 409, la cuenta original sigue viva
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
			"name": "Impostor", "email": "alice@example.com",
			"password": "otherpass", "contact": "11 98888-7777",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate register, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email": "alice@example.com", "password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login after duplicate attempt, got %d body=%s", st, string(body))
		}
	}

	// 3) Login con password incorrecta => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email": "alice@example.com", "password": "wrong-pass",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad login, got %d", st)
		}
	}

	// 4) /animals sin token => 401; con token basura => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/animals", "not-a-token", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 with garbage token, got %d", st)
		}
	}

	// 5) A crea a Rex; el ownerId lo pone el backend, no el payload
	rexID := createAnimal(t, ts.URL, tokenA, map[string]any{
		"name": "Rex", "age": 3, "type": "DOG", "breed": "mixed",
		"ownerName": "Alice", "ownerContact": "11 99999-9999",
		"ownerId": "someone-else", // ignorado
	})

	var rex animalBody
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+rexID, tokenA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get rex, got %d body=%s", st, string(body))
		}
		mustUnmarshal(t, body, &rex)
		if rex.OwnerID == "" || rex.OwnerID == "someone-else" {
			t.Fatalf("ownerId not forced to caller: %+v", rex)
		}
	}

	// 6) B ve a Rex (read-all) pero no puede tocarlo (write-own)
	{
		st, _ := doReq(t, ts.URL, "GET", "/animals/"+rexID, tokenB, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get rex by B, got %d", st)
		}

		st, _ = doReq(t, ts.URL, "PATCH", "/animals/"+rexID, tokenB, map[string]any{"name": "Rex2"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 patch by B, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/animals/"+rexID, tokenB, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete by B, got %d", st)
		}

		// Sigue llamándose Rex
		st, body := doReq(t, ts.URL, "GET", "/animals/"+rexID, tokenB, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var got animalBody
		mustUnmarshal(t, body, &got)
		if got.Name != "Rex" {
			t.Fatalf("record mutated by forbidden patch: %+v", got)
		}
	}

	// 7) A sí puede: patch parcial, owner intacto aunque el patch traiga ownerId
	{
		st, body := doReq(t, ts.URL, "PATCH", "/animals/"+rexID, tokenA, map[string]any{
			"name": "Rex2", "ownerId": "someone-else",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch by A, got %d body=%s", st, string(body))
		}
		var got animalBody
		mustUnmarshal(t, body, &got)
		if got.Name != "Rex2" {
			t.Fatalf("patch not applied: %+v", got)
		}
		if got.OwnerID != rex.OwnerID {
			t.Fatalf("ownerId changed by patch: %q -> %q", rex.OwnerID, got.OwnerID)
		}
		if got.Breed != "mixed" || got.Age != 3 {
			t.Fatalf("fields outside the patch changed: %+v", got)
		}
	}

	// 8) B crea a Mia; búsqueda y stats sobre la colección completa
	createAnimal(t, ts.URL, tokenB, map[string]any{
		"name": "Mia", "age": 2, "type": "CAT", "breed": "siamese",
		"ownerName": "Bob", "ownerContact": "11 98888-7777",
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/animals", tokenA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var all []animalBody
		mustUnmarshal(t, body, &all)
		if len(all) != 2 {
			t.Fatalf("read-all broken: A sees %d animals, want 2", len(all))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals?q=mIa", tokenA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d", st)
		}
		var found []animalBody
		mustUnmarshal(t, body, &found)
		if len(found) != 1 || found[0].Name != "Mia" {
			t.Fatalf("search q=mIa: %+v", found)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/stats", tokenB, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d", st)
		}
		var stats struct {
			Total  int     `json:"total"`
			Dogs   int     `json:"dogs"`
			Cats   int     `json:"cats"`
			AvgAge float64 `json:"avgAge"`
		}
		mustUnmarshal(t, body, &stats)
		if stats.Total != 2 || stats.Dogs != 1 || stats.Cats != 1 {
			t.Fatalf("stats counts: %+v", stats)
		}
		// mean(3,2) = 2.5
		if stats.AvgAge != 2.5 {
			t.Fatalf("avgAge = %v, want 2.5", stats.AvgAge)
		}
	}

	// 9) A borra a Rex; después 404
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/animals/"+rexID, tokenA, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete by owner, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/animals/"+rexID, tokenA, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "PATCH", "/animals/"+rexID, tokenA, map[string]any{"name": "x"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 patch after delete, got %d", st)
		}
	}
}

func TestHTTP_ValidationErrorsAreFieldLevel(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	// Registro inválido: lista de errores por campo, no un fallo genérico.
	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"name": "J", "email": "nope", "password": "123", "contact": "x",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", st)
	}
	var resp struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	mustUnmarshal(t, body, &resp)
	if len(resp.Errors) != 4 {
		t.Fatalf("expected 4 field errors, got %d body=%s", len(resp.Errors), string(body))
	}

	// Animal inválido: idem, detrás de auth.
	_, tok := register(t, ts.URL, "Alice", "alice@example.com")
	st, body = doReq(t, ts.URL, "POST", "/animals", tok, map[string]any{
		"name": "", "age": -1, "type": "PARROT", "breed": "",
		"ownerName": "", "ownerContact": "nope",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid animal, got %d body=%s", st, string(body))
	}
	mustUnmarshal(t, body, &resp)
	if len(resp.Errors) != 6 {
		t.Fatalf("expected 6 field errors, got %d body=%s", len(resp.Errors), string(body))
	}
}

func TestHTTP_AuthResponseOmitsPasswordHash(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
		"name": "Alice", "email": "alice@example.com",
		"password": "secret123", "contact": "11 99999-9999",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, string(body))
	}

	var raw map[string]any
	mustUnmarshal(t, body, &raw)
	user, ok := raw["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user in response: %s", string(body))
	}
	for _, k := range []string{"password", "passwordHash", "PasswordHash"} {
		if _, leaked := user[k]; leaked {
			t.Fatalf("response leaks %q: %s", k, string(body))
		}
	}
	if raw["token"] == "" || raw["token"] == nil {
		t.Fatalf("missing token in response: %s", string(body))
	}
}

// -------------------------
// Helpers
// -------------------------

type animalBody struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Type      string `json:"type"`
	Breed     string `json:"breed"`
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
}

func register(t *testing.T, baseURL, name, email string) (string, string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"name": name, "email": email,
		"password": "secret123", "contact": "11 99999-9999",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Token string `json:"token"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.User.ID == "" || resp.Token == "" {
		t.Fatalf("register: missing user/token body=%s", string(body))
	}
	return resp.User.ID, resp.Token
}

func createAnimal(t *testing.T, baseURL, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, payload map[string]any) (int, []byte) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		t.Fatal(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, body
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("unmarshal %q: %v", string(body), err)
	}
}
