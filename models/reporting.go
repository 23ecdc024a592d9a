package models

import (
	"time"

	"github.com/google/uuid"
)

// ActiveSessionRow is one live session on the supervisor dashboard
type ActiveSessionRow struct {
	SessionID       uuid.UUID     `json:"session_id" db:"session_id"`
	UserID          uuid.UUID     `json:"user_id" db:"user_id"`
	Username        string        `json:"username" db:"username"`
	FullName        string        `json:"full_name" db:"full_name"`
	WorkstationCode string        `json:"workstation_code" db:"workstation_code"`
	WorkstationName string        `json:"workstation_name" db:"workstation_name"`
	Status          SessionStatus `json:"status" db:"status"`
	StartTime       time.Time     `json:"start_time" db:"start_time"`

	// Live accounting, filled by the service from the event log
	WorkMinutes    int    `json:"work_minutes"`
	BreakMinutes   int    `json:"break_minutes"`
	WorkFormatted  string `json:"work_formatted"`
	BreakFormatted string `json:"break_formatted"`
}

// RosterRow is one employee on the daily roster, present even with zero
// sessions ("not shown up")
type RosterRow struct {
	UserID            uuid.UUID  `json:"user_id" db:"user_id"`
	Username          string     `json:"username" db:"username"`
	FullName          string     `json:"full_name" db:"full_name"`
	SessionCount      int        `json:"session_count" db:"session_count"`
	TotalWorkMinutes  int        `json:"total_work_minutes" db:"total_work_minutes"`
	TotalBreakMinutes int        `json:"total_break_minutes" db:"total_break_minutes"`
	IsCurrentlyActive bool       `json:"is_currently_active" db:"is_currently_active"`
	FirstStart        *time.Time `json:"first_start,omitempty" db:"first_start"`
	WorkFormatted     string     `json:"work_formatted"`
	BreakFormatted    string     `json:"break_formatted"`
}

// WorkstationUtilization summarizes one workstation over a date range
type WorkstationUtilization struct {
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	SessionCount      int       `json:"session_count"`
	DistinctUsers     int       `json:"distinct_users"`
	DistinctDays      int       `json:"distinct_days"`
	CurrentlyActive   int       `json:"currently_active"`
	MeanWorkMinutes   float64   `json:"mean_work_minutes"`
	MedianWorkMinutes float64   `json:"median_work_minutes"`
	TotalWorkMinutes  int       `json:"total_work_minutes"`
}

// ReportFilter narrows the cross-cutting summary report
type ReportFilter struct {
	From            string     `json:"from"`
	To              string     `json:"to"`
	EmployeeID      *uuid.UUID `json:"employee_id,omitempty"`
	WorkstationCode string     `json:"workstation_code,omitempty"`
}

// ReportSessionRow is one session-level line of the summary report
type ReportSessionRow struct {
	SessionID         uuid.UUID     `json:"session_id" db:"session_id"`
	Date              string        `json:"date" db:"date"`
	Username          string        `json:"username" db:"username"`
	FullName          string        `json:"full_name" db:"full_name"`
	WorkstationCode   string        `json:"workstation_code" db:"workstation_code"`
	WorkstationName   string        `json:"workstation_name" db:"workstation_name"`
	Status            SessionStatus `json:"status" db:"status"`
	StartTime         time.Time     `json:"start_time" db:"start_time"`
	EndTime           *time.Time    `json:"end_time,omitempty" db:"end_time"`
	TotalWorkMinutes  int           `json:"total_work_minutes" db:"total_work_minutes"`
	TotalBreakMinutes int           `json:"total_break_minutes" db:"total_break_minutes"`
	WorkFormatted     string        `json:"work_formatted"`
	BreakFormatted    string        `json:"break_formatted"`
}

// ReportBreakdown is an aggregate line keyed by employee or workstation
type ReportBreakdown struct {
	Key               string `json:"key"`
	Label             string `json:"label"`
	SessionCount      int    `json:"session_count"`
	TotalWorkMinutes  int    `json:"total_work_minutes"`
	TotalBreakMinutes int    `json:"total_break_minutes"`
	WorkFormatted     string `json:"work_formatted"`
	BreakFormatted    string `json:"break_formatted"`
}

// ReportSummary is the full payload of the cross-cutting report
type ReportSummary struct {
	Filter         ReportFilter       `json:"filter"`
	Sessions       []ReportSessionRow `json:"sessions"`
	ByEmployee     []ReportBreakdown  `json:"by_employee"`
	ByWorkstation  []ReportBreakdown  `json:"by_workstation"`
	Global         ReportBreakdown    `json:"global"`
	GeneratedAt    time.Time          `json:"generated_at"`
	TotalSessions  int                `json:"total_sessions"`
	TotalEmployees int                `json:"total_employees"`
}
