package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"moment_dev_v1_202609/internal/service"
	"moment_dev_v1_202609/pkg/gateway"
)

// DomainRefreshTask 域名验证状态巡检
// 操作者在后台点完"验证"后 TXT 记录往往还没生效，这个任务周期性地
// 替兜底租户把 pending 的自定义域名重试一遍，免得一直停在未验证
type DomainRefreshTask struct {
	DomainSvc *service.DomainService
	Cron      *cron.Cron

	spec      string
	logger    *zap.Logger
	sleepTime time.Duration
}

func NewDomainRefreshTask(domainSvc *service.DomainService, spec string, logger *zap.Logger) *DomainRefreshTask {
	if spec == "" {
		spec = "0 0/5 * * * *"
	}
	return &DomainRefreshTask{
		DomainSvc: domainSvc,
		Cron:      cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:      spec,
		logger:    logger,
		sleepTime: 200 * time.Millisecond, // 逐个验证之间留间隔，别打爆网关的 DNS 查询
	}
}

// Start 启动定时任务
func (t *DomainRefreshTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		t.logger.Info("服务启动，正在执行首次域名验证巡检")
		t.refreshJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		t.refreshJob(ctx)
	})

	if err != nil {
		t.logger.Fatal("无法启动域名巡检任务", zap.Error(err))
	}

	t.Cron.Start()
	t.logger.Info("域名验证巡检任务已启动", zap.String("spec", t.spec))
}

// Stop 停止任务 (优雅关闭时调用)
func (t *DomainRefreshTask) Stop() {
	t.Cron.Stop()
}

// refreshJob 巡检逻辑
// 网关是域名状态的唯一权威，这里只读列表 + 触发验证，不落任何本地状态
func (t *DomainRefreshTask) refreshJob(ctx context.Context) {
	// 空 Actor 按兜底租户处理
	domains, err := t.DomainSvc.List(ctx, service.Actor{})
	if err != nil {
		t.logger.Warn("域名列表拉取失败，跳过本轮巡检", zap.Error(err))
		return
	}

	pending := 0
	for _, d := range domains {
		// 平台子域不需要 DNS 验证；归档域名不再碰
		if d.Type != gateway.DomainTypeCustom || d.Verified || d.Archived {
			continue
		}
		pending++

		select {
		case <-ctx.Done():
			t.logger.Warn("巡检超时停止")
			return
		default:
		}

		result, err := t.DomainSvc.Verify(ctx, service.Actor{}, d.ID)
		if err != nil {
			// 日志仅记录，继续处理剩下的域名
			t.logger.Warn("域名验证重试失败",
				zap.String("domain", d.Domain),
				zap.Error(err),
			)
		} else if result.Verified {
			t.logger.Info("域名验证通过",
				zap.String("domain", d.Domain),
				zap.String("id", d.ID),
			)
		}

		time.Sleep(t.sleepTime)
	}

	if pending > 0 {
		t.logger.Info("本轮域名巡检完成", zap.Int("pending", pending))
	}
}
