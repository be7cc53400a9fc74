package dto

// ── 写真モジュール DTO ──

// UploadPhotoForm 写真アップロードフォーム（multipart）。
// ファイル本体は multipart の "file" フィールドで受け取る
type UploadPhotoForm struct {
	PhotoType        string `form:"photo_type" binding:"required,oneof=before after"`
	AirConditionerID *uint  `form:"air_conditioner_id"`
	WorkItemID       *uint  `form:"work_item_id"`
	Caption          string `form:"caption"   binding:"omitempty,max=255"`
	RoomName         string `form:"room_name" binding:"omitempty,max=100"`
}

// UpdatePhotoRequest 写真メタデータ更新要求
type UpdatePhotoRequest struct {
	PhotoType        *string `json:"photo_type" binding:"omitempty,oneof=before after"`
	AirConditionerID *uint   `json:"air_conditioner_id"`
	WorkItemID       *uint   `json:"work_item_id"`
	Caption          *string `json:"caption"    binding:"omitempty,max=255"`
	RoomName         *string `json:"room_name"  binding:"omitempty,max=100"`
}
