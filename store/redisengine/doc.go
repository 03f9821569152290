// Package redisengine stores roadmap notes in Redis.
//
// Every note is a JSON document under <prefix>:data:<id>. Set indexes under
// <prefix>:index:... hold the ids per category, priority and timeline, so the
// filtered queries read one set and fetch the documents with a single MGET.
package redisengine
