package comb

import "errors"

// ErrWarmingUp is returned by Decoder.Process while the frame ring has not
// yet accumulated enough field pairs for 3D comb decoding. It is not an
// error condition in the usual sense: callers should keep feeding field
// pairs and ignore it until it stops being returned.
var ErrWarmingUp = errors.New("comb: decoder warming up, need more field pairs")
