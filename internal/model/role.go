package model

// RoleProfile 岗位目录条目，来自外部目录文件，入库前必须经过校验
// swagger:model RoleProfile
type RoleProfile struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	IdealSkills []IdealSkill `json:"idealSkills" yaml:"idealSkills"`
}

// IdealSkill 岗位要求的技能，Weight 为占比，IdealScore 为 0-100 的期望熟练度
// swagger:model IdealSkill
type IdealSkill struct {
	Name       string  `json:"name" yaml:"name"`
	Weight     float64 `json:"weight" yaml:"weight"`
	IdealScore int     `json:"idealScore" yaml:"idealScore"`
}

// RoleCatalog 目录文件的顶层结构
type RoleCatalog struct {
	Roles []RoleProfile `json:"roles" yaml:"roles"`
}
