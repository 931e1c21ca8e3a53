package repository

import "errors"

var ErrNotFound = errors.New("not found")
var ErrDuplicate = errors.New("duplicate identity")
var ErrStorage = errors.New("storage failure")
