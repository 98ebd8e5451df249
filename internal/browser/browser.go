package browser

import (
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config 浏览器启动配置
type Config struct {
	ProxyURL string // 代理URL
	Headless bool   // false 时显示界面
	Bin      string // Chrome 可执行文件路径，为空时自动查找或下载
}

// Browser 封装 rod.Browser 实例
type Browser struct {
	browser *rod.Browser
	close   func() error // 断开并关闭浏览器
	kill    func()       // 结束启动器进程
}

// New 按配置启动浏览器并建立连接
func New(cfg Config) (*Browser, error) {
	l := launcher.New().Headless(cfg.Headless)
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	if cfg.ProxyURL != "" {
		l = l.Proxy(cfg.ProxyURL)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &Browser{
		browser: b,
		close:   b.Close,
		kill:    l.Kill,
	}, nil
}

// NewPage 创建新的浏览器页面
func (b *Browser) NewPage() (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Close 关闭浏览器并清理资源，浏览器关闭失败时仍会结束启动器进程
func (b *Browser) Close() error {
	var err error
	if b.close != nil {
		err = b.close()
	}
	if b.kill != nil {
		b.kill()
	}
	return err
}
