// Package preload keeps screen code resident before it is needed.
//
// Three pieces work together: a Policy names the screens most likely to be
// visited next, a Scheduler defers that work until the host is idle (with a
// hard timeout so it is never starved), and a Cache guarantees each screen
// is loaded at most once per session no matter how many times it is asked.
package preload
