package runner

import (
	"os"
	"time"
)

var (
	Hostname string
	Pwd      string
	Start    time.Time
)

func init() {

	var err error
	Hostname, err = os.Hostname()
	if err != nil {
		Hostname = "unknown"
	}

	Pwd, _ = os.Getwd()
	Start = time.Now()
}

// Uptime 进程运行时长
func Uptime() time.Duration {
	return time.Since(Start)
}
