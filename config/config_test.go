package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
auth:
  jwt_secret: "file-secret-0123456789"
training:
  import_max_rows: 100
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	t.Setenv("ONBOARD_TRAINING_RENDER_CACHE_TTL", "2m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望 port=9090，实际=%d", cfg.Server.Port)
	}
	if cfg.Training.ImportMaxRows != 100 {
		t.Errorf("期望 import_max_rows=100，实际=%d", cfg.Training.ImportMaxRows)
	}
	if cfg.Training.RenderCacheTTL != 2*time.Minute {
		t.Errorf("期望环境变量覆盖 render_cache_ttl=2m，实际=%s", cfg.Training.RenderCacheTTL)
	}
	if cfg.Training.SubmitRateLimit != 30 {
		t.Errorf("期望默认 submit_rate_limit=30，实际=%d", cfg.Training.SubmitRateLimit)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Server:   ServerConfig{Port: 8080},
		Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
		Training: TrainingConfig{ImportMaxRows: 10},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("合法配置校验失败: %v", err)
	}

	short := base
	short.Auth.JWTSecret = "short"
	if err := short.Validate(); err == nil {
		t.Error("jwt_secret 过短应校验失败")
	}

	badPort := base
	badPort.Server.Port = 70000
	if err := badPort.Validate(); err == nil {
		t.Error("端口越界应校验失败")
	}

	noRows := base
	noRows.Training.ImportMaxRows = 0
	if err := noRows.Validate(); err == nil {
		t.Error("import_max_rows=0 应校验失败")
	}
}
