package repository

import "errors"

// 見つからないはどの実装でもこれに寄せる（infraがgormのsentinelから変換する）
var ErrNotFound = errors.New("not found")
