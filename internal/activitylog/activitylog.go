// Package activitylog 处理文章附带的 agent 活动日志（agent-log.json）
//
// 日志的结构对编译器不透明，这里只校验 JSON、读取 entries 摘要并负责同步到发布目录。
package activitylog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrInvalidActivityLog 日志不是合法 JSON
var ErrInvalidActivityLog = errors.New("activity log is not valid JSON")

// Summary 日志摘要
type Summary struct {
	Entries    int      `json:"entries"`
	AgentTypes []string `json:"agent_types"`
	Categories []string `json:"categories"`
}

// Validate 检查 data 是否为合法 JSON
func Validate(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrInvalidActivityLog
	}
	return nil
}

// Count 返回 entries 数组长度；没有 entries 时返回 0
func Count(data []byte) int {
	return int(gjson.GetBytes(data, "entries.#").Int())
}

// Summarize 返回 entries 数量以及去重排序后的 agentType 和 category
func Summarize(data []byte) (Summary, error) {
	if err := Validate(data); err != nil {
		return Summary{}, err
	}
	return Summary{
		Entries:    Count(data),
		AgentTypes: distinct(gjson.GetBytes(data, "entries.#.agentType")),
		Categories: distinct(gjson.GetBytes(data, "entries.#.category")),
	}, nil
}

func distinct(result gjson.Result) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	result.ForEach(func(_, v gjson.Result) bool {
		s := v.String()
		if s == "" {
			return true
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
		return true
	})
	sort.Strings(out)
	return out
}

// Sync 校验 src 后原样复制到 dst
//
// 参数：
//   - src: 源日志文件
//   - dst: 目标文件，父目录不存在时自动创建
//
// 返回：
//   - int: entries 数量
//   - error: 读取失败、JSON 无效（ErrInvalidActivityLog）或写入失败
func Sync(src, dst string) (int, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, fmt.Errorf("read activity log: %w", err)
	}
	if err := Validate(data); err != nil {
		return 0, fmt.Errorf("%s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create target dir: %w", err)
	}

	// 先写临时文件再 rename，避免读到半个文件
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".agent-log-*.json")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("write activity log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("write activity log: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("write activity log: %w", err)
	}
	return Count(data), nil
}
