package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

// fakeGateway 最小化的网关桩
func fakeGateway(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, 0, zap.NewNop())
}

func TestList(t *testing.T) {
	var gotAuth string
	_, client := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodGet || r.URL.Path != "/api/domains" {
			t.Errorf("意外的请求: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"domains":[{"id":"d1","domain":"shop1.example.com","type":"subdomain","verified":true},{"id":"d2","domain":"shop.acme.com","type":"custom","verified":false}],"total":2}`))
	})

	domains, err := client.List(context.Background(), "test-token")
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(domains) != 2 {
		t.Fatalf("期望 2 条域名，得到 %d", len(domains))
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("凭证未挂到 Authorization 头: %q", gotAuth)
	}
	if domains[0].ID != "d1" || !domains[0].Verified {
		t.Errorf("域名字段解析错误: %+v", domains[0])
	}
}

func TestGetNotFound(t *testing.T) {
	_, client := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Domain not found","code":"not_found"}`))
	})

	_, err := client.Get(context.Background(), "tok", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("404 应映射为 ErrNotFound，得到: %v", err)
	}
}

func TestCreateRejected(t *testing.T) {
	rawBody := `{"error":"Domain already exists","code":"domain_exists"}`
	_, client := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(rawBody))
	})

	_, err := client.Create(context.Background(), "tok", "taken.com")
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("期望 RejectedError，得到: %v", err)
	}
	if rejected.StatusCode != http.StatusConflict {
		t.Errorf("状态码应保留 409，得到 %d", rejected.StatusCode)
	}
	if rejected.Code != "domain_exists" {
		t.Errorf("错误码应为 domain_exists，得到 %q", rejected.Code)
	}
	// 原始响应体必须原样保留，供管理端透传
	if string(rejected.Body) != rawBody {
		t.Errorf("响应体被改写: %s", rejected.Body)
	}
}

func TestRejectedUnparseableBody(t *testing.T) {
	_, client := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.Create(context.Background(), "tok", "x.com")
	var rejected *RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("期望 RejectedError，得到: %v", err)
	}
	if rejected.Code != "unknown" {
		t.Errorf("非 JSON 错误体应归为 unknown，得到 %q", rejected.Code)
	}
}

func TestUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close() // 先关掉，制造连接拒绝

	client := NewClient(url, 0, zap.NewNop())
	_, err := client.List(context.Background(), "tok")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("连接失败应映射为 ErrUnreachable，得到: %v", err)
	}
}

func TestVerifyPendingIsNotError(t *testing.T) {
	_, client := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/domains/d1/verify" {
			t.Errorf("意外的路径: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"verified":false,"message":"TXT record not found yet"}`))
	})

	result, err := client.Verify(context.Background(), "tok", "d1")
	if err != nil {
		t.Fatalf("未通过的验证是中间态不是错误: %v", err)
	}
	if result.Verified {
		t.Error("Verified 应为 false")
	}
	if result.Message == "" {
		t.Error("提示信息应透传")
	}
}

func TestDomainState(t *testing.T) {
	cases := []struct {
		name   string
		domain Domain
		want   string
	}{
		{"未验证", Domain{Verified: false}, DomainStatePending},
		{"已验证", Domain{Verified: true}, DomainStateVerified},
		{"归档优先", Domain{Verified: true, Archived: true}, DomainStateArchived},
		{"正交标记不影响主状态", Domain{Verified: true, SSLIssued: true, IsPrimary: true}, DomainStateVerified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.domain.State(); got != tc.want {
				t.Errorf("State() = %q, 期望 %q", got, tc.want)
			}
		})
	}
}
