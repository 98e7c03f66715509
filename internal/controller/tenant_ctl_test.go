package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"moment_dev_v1_202609/internal/config"
	"moment_dev_v1_202609/internal/model"
	"moment_dev_v1_202609/internal/repository"
	"moment_dev_v1_202609/internal/service"
)

func setupControllerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Tenant{}, &model.Theme{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newTenantTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewTenantService(
		repository.NewTenantRepository(db),
		repository.NewThemeRepository(db),
		config.TenantConfig{DefaultSlug: "default"},
		zap.NewNop(),
	)
	ctl := NewTenantController(svc)

	r := gin.New()
	r.GET("/api/tenant", ctl.Resolve)
	return r
}

func TestTenantResolveEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	sub := "shop1"
	if err := db.Create(&model.Tenant{Name: "店一", Slug: "shop1", Subdomain: &sub}).Error; err != nil {
		t.Fatalf("租户写入失败: %v", err)
	}
	r := newTenantTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tenant?hostname=shop1.example.com", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，得到 %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Slug        string `json:"slug"`
		ActiveTheme string `json:"activeTheme"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Slug != "shop1" {
		t.Errorf("slug 错误: %q", resp.Slug)
	}
	// 未绑定主题也要给出可渲染的默认值
	if resp.ActiveTheme != "default" {
		t.Errorf("activeTheme 应为 default，得到 %q", resp.ActiveTheme)
	}
}

func TestTenantResolveNotFound(t *testing.T) {
	db := setupControllerTestDB(t)
	// 没有任何租户也没有默认租户
	sub := "other"
	if err := db.Create(&model.Tenant{Name: "别家", Slug: "other", Subdomain: &sub}).Error; err != nil {
		t.Fatalf("租户写入失败: %v", err)
	}
	r := newTenantTestRouter(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tenant?hostname=nobody.example.com", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，得到 %d", w.Code)
	}

	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "No tenant found" {
		t.Errorf("错误文案错误: %q", resp["error"])
	}
}

func TestTenantResolveNoDefaultTenant(t *testing.T) {
	db := setupControllerTestDB(t)
	r := newTenantTestRouter(t, db)

	// localhost 指向默认租户，默认租户缺失属部署问题
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tenant?hostname=localhost", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("期望 500，得到 %d", w.Code)
	}
}
