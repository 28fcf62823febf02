package session

import "log"

// logWindowFold reports one window's fold in verbose mode. This is the
// only logging cyclone-msm does: there is no structured-logging
// dependency to reach for, since the session has exactly one fact worth
// reporting and no request/trace context to correlate it with.
func logWindowFold(limb, window int) {
	log.Printf("session: folded limb %d window %d", limb, window)
}
