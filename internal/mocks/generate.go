package mocks

//go:generate mockery --name SeriesStore --srcpkg github.com/aevon-lab/calseries/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
