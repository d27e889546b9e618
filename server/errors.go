package server

import "fmt"

// AlreadyServing is returned by ListenAndServe on a Server that has
// already bound its listener.
var AlreadyServing = fmt.Errorf("server: already serving")
