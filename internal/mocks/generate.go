package mocks

//go:generate mockery --name SnapshotReader --srcpkg github.com/aevon-lab/fleet-analytics/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name RecordWriter --srcpkg github.com/aevon-lab/fleet-analytics/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
