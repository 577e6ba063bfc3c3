// Package touchdev reads a Linux touchscreen through evdev and drives an
// edge-swipe gesture machine with it. Both the single-touch (BTN_TOUCH,
// ABS_X) and the multitouch type B (ABS_MT_TRACKING_ID,
// ABS_MT_POSITION_X) protocols are understood; only the first contact is
// tracked.
package touchdev
