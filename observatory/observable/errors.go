package observable

import "errors"

var ErrNoDispatcher = errors.New("observable: no dispatcher")
