// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Admission inquiry statuses.
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusInProcess = "in_process"
	InquiryStatusEnrolled  = "enrolled"
	InquiryStatusClosed    = "closed"
)

// InquiryStatuses lists statuses in workflow order with admin labels.
var InquiryStatuses = []Option{
	{Value: InquiryStatusNew, Label: "New"},
	{Value: InquiryStatusContacted, Label: "Contacted"},
	{Value: InquiryStatusInProcess, Label: "In Process"},
	{Value: InquiryStatusEnrolled, Label: "Enrolled"},
	{Value: InquiryStatusClosed, Label: "Closed"},
}

// NormalizeInquiryStatus returns s when it is a known status and "new" otherwise.
func NormalizeInquiryStatus(s string) string {
	for _, st := range InquiryStatuses {
		if st.Value == s {
			return s
		}
	}
	return InquiryStatusNew
}

// InquiryExportColumns is the fixed header row of inquiry exports.
var InquiryExportColumns = []string{
	"ID", "Student Name", "Parent Name", "Class", "Mobile", "Email",
	"Address", "Message", "Status", "Submitted At",
}
