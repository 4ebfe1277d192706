package models

type UserRole string
type JobType string
type ApplicationStatus string

const (
	UserRoleCompany UserRole = "company"
	UserRoleSeeker  UserRole = "seeker"

	JobTypeFullTime JobType = "FULL_TIME"
	JobTypePartTime JobType = "PART_TIME"
	JobTypeRemote   JobType = "REMOTE"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// JobTypes lists the accepted job type values, in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeRemote}

func (r UserRole) Valid() bool {
	return r == UserRoleCompany || r == UserRoleSeeker
}

func (t JobType) Valid() bool {
	for _, jt := range JobTypes {
		if t == jt {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}
