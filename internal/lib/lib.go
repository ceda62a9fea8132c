// Package lib holds supporting code that does not belong to a single
// layer, such as background job processing on Redis with Asynq.
package lib
