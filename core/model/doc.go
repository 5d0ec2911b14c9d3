package model

// Package model defines the domain types shared by the planning core:
// time slots, time-of-use prices, appliances, HVAC and EV profiles,
// budget state, actions, schedules and decision traces. Types are plain
// values validated at construction; nothing here mutates during search.
