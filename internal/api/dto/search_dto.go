package dto

type SearchDTO struct {
	Keyword  string `form:"keyword" binding:"required"`
	Mode     string `form:"mode,default=keyword" validate:"omitempty,oneof=keyword ai"`
	Page     int    `form:"page,default=1" validate:"min=1"`
	PageSize int    `form:"pageSize,default=10" validate:"min=1,max=50"`
}
