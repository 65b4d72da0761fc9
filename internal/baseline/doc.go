// Package baseline holds reference implementations of the broadcastlog.Log surface
// (Push, Get, Len) used to judge its throughput and latency.
//
// None of them is meant for production use.
package baseline
