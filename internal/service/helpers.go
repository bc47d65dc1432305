package service

import "time"

// fetchConcurrency bounds parallel Trello calls per fan-out level.
const fetchConcurrency = 8

var timeNow = time.Now
