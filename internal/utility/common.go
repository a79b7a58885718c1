package utility

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"
)

// GoProtect chạy f và nuốt panic (in stack ra stderr) để goroutine nền không làm sập process
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered panic: %v\n%s\n", err, debug.Stack())
		}
	}()
	f()
}

// CurrentTimeInMilli trả về timestamp hiện tại tính bằng mili giây
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
