//go:build !navdebug

package navgrid

const boundsChecks = false
