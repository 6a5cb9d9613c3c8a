// Package types 定义共享的基础类型
package types

// PetKind 定义宠物的种类
// 种类集合是封闭的，选中后在用户切换前保持不变
type PetKind string

const (
	// PetFox 狐狸
	PetFox PetKind = "fox"
	// PetCat 猫
	PetCat PetKind = "cat"
	// PetRedPanda 小熊猫
	PetRedPanda PetKind = "redPanda"
)

// AllPetKinds 返回所有合法的宠物种类（顺序固定，用于 UI 遍历）
func AllPetKinds() []PetKind {
	return []PetKind{PetFox, PetCat, PetRedPanda}
}

// Valid 判断种类是否合法
func (k PetKind) Valid() bool {
	switch k {
	case PetFox, PetCat, PetRedPanda:
		return true
	}
	return false
}

// String 返回种类的字符串表示
func (k PetKind) String() string {
	return string(k)
}
