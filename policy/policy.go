// 信控策略：根据路口观测给出期望相位
package policy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/intersim/entity"
	"github.com/tsinghua-fib-lab/intersim/utils/config"
)

var log = logrus.WithField("module", "policy")

var (
	ErrUnknownPolicy = errors.New("unknown policy")
)

// factories 策略名称到构造函数的映射
var factories = map[string]func(c config.Config) (entity.IPolicy, error){
	"rule": func(c config.Config) (entity.IPolicy, error) {
		return NewRuleBased(c.Signal.MaxRed), nil
	},
	"fixed": func(c config.Config) (entity.IPolicy, error) {
		if c.Control.Policy.Cycle <= 0 {
			return nil, fmt.Errorf("fixed policy: cycle must be > 0, got %v", c.Control.Policy.Cycle)
		}
		return NewFixed(c.Control.Policy.Cycle), nil
	},
}

// Names 可用策略名称（有序）
func Names() []string {
	names := lo.Keys(factories)
	slices.Sort(names)
	return names
}

// New 按配置创建策略
// 参数：c-配置，使用control.policy.name选择策略
// 返回：策略实例，名称未知时返回ErrUnknownPolicy
func New(c config.Config) (entity.IPolicy, error) {
	f, ok := factories[c.Control.Policy.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %v", ErrUnknownPolicy, c.Control.Policy.Name, Names())
	}
	p, err := f(c)
	if err != nil {
		return nil, err
	}
	log.Infof("use policy %s", c.Control.Policy.Name)
	return p, nil
}
