package game

import "errors"

// 错误分类：
// ErrInvalidState 表示调用方违反了会话或归档的状态前置条件，
// 属于调用层的编程错误，不应该被包装成玩家可见的游戏错误。
// ErrOutOfRange 表示一个[0,99]之外的猜测值到达了核心，
// 核心在不修改任何会话状态的前提下拒绝它。
var (
	ErrInvalidState = errors.New("操作违反了会话或归档的状态前置条件")
	ErrOutOfRange   = errors.New("猜测数值超出[0,99]范围")
)
