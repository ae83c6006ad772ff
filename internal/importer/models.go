package importer

import "github.com/goliatone/go-onboarding/records"

type (
	Resource  = records.Resource
	Colleague = records.Colleague
	Kind      = records.Kind
)
