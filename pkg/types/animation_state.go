package types

import (
	"fmt"
	"strings"
)

// AnimationName 定义动画名称
// 名称集合是封闭的，每个宠物的动画表必须覆盖全部四种
type AnimationName string

const (
	// AnimIdle 待机
	AnimIdle AnimationName = "idle"
	// AnimRun 奔跑
	AnimRun AnimationName = "run"
	// AnimJump 跳跃
	AnimJump AnimationName = "jump"
	// AnimFall 下落
	AnimFall AnimationName = "fall"
)

// AllAnimationNames 返回所有合法的动画名称
func AllAnimationNames() []AnimationName {
	return []AnimationName{AnimIdle, AnimRun, AnimJump, AnimFall}
}

// Valid 判断动画名称是否合法
func (n AnimationName) Valid() bool {
	switch n {
	case AnimIdle, AnimRun, AnimJump, AnimFall:
		return true
	}
	return false
}

// FacingDirection 定义宠物朝向
type FacingDirection string

const (
	// FacingLeft 朝左
	FacingLeft FacingDirection = "left"
	// FacingRight 朝右
	FacingRight FacingDirection = "right"
)

// Valid 判断朝向是否合法
func (d FacingDirection) Valid() bool {
	return d == FacingLeft || d == FacingRight
}

// AnimationState 动画状态 = (动画名称, 朝向)
// 对外表示为单个 token："<name>-<direction>"，如 "idle-right"
type AnimationState struct {
	Name      AnimationName
	Direction FacingDirection
}

// DefaultAnimationState 返回初始动画状态（待机、朝右）
func DefaultAnimationState() AnimationState {
	return AnimationState{Name: AnimIdle, Direction: FacingRight}
}

// Token 返回状态的对外 token 表示，如 "run-left"
func (s AnimationState) Token() string {
	return string(s.Name) + "-" + string(s.Direction)
}

// ParseStateToken 解析运动裁决方返回的状态 token
//
// token 格式为 "<name>-<direction>"，name ∈ {idle,run,jump,fall}，
// direction ∈ {left,right}。任何不符合格式的 token 都返回错误，
// 调用方应跳过本次更新而不是应用非法状态。
func ParseStateToken(token string) (AnimationState, error) {
	name, direction, ok := strings.Cut(token, "-")
	if !ok {
		return AnimationState{}, fmt.Errorf("invalid state token %q: missing separator", token)
	}

	state := AnimationState{
		Name:      AnimationName(name),
		Direction: FacingDirection(direction),
	}
	if !state.Name.Valid() {
		return AnimationState{}, fmt.Errorf("invalid state token %q: unknown animation %q", token, name)
	}
	if !state.Direction.Valid() {
		return AnimationState{}, fmt.Errorf("invalid state token %q: unknown direction %q", token, direction)
	}
	return state, nil
}
