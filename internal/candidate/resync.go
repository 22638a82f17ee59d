package candidate

import (
	"fmt"
	"time"

	"github.com/SlpAus/evoting-backend/pkg/lifecycle"
)

const resyncInterval = 5 * time.Minute

// StartResyncService 启动后台的镜像同步服务。
// 它定期用SQLite中的权威数据重建Redis计票镜像，
// 修复降级期间或尽力写入失败造成的偏差。
func StartResyncService(handle *lifecycle.Handle) {
	go func() {
		defer handle.Close()
		fmt.Println("计票镜像同步服务已启动。")

		for {
			if err := handle.Sleep(resyncInterval); err != nil {
				fmt.Println("计票镜像同步服务已停止。")
				return
			}
			if err := WarmupCache(); err != nil {
				fmt.Printf("警告: 计票镜像同步失败: %v\n", err)
			}
		}
	}()
}
