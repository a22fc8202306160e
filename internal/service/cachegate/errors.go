package cachegate

import "errors"

var (
	// ErrBuild возвращается, когда пересчет записи завершился ошибкой
	ErrBuild = errors.New("cachegate: failed to build payload")

	// ErrEncode возвращается при ошибке сериализации или разбора payload
	ErrEncode = errors.New("cachegate: failed to encode payload")
)
